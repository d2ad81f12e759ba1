package tools

import (
	"context"
	"testing"
)

type fakeTool struct{ name string }

func (t *fakeTool) GetName() string                        { return t.name }
func (t *fakeTool) GetDescription() string                 { return "fake" }
func (t *fakeTool) GetInputSchema() map[string]interface{} { return nil }
func (t *fakeTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "", nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&fakeTool{name: "search"}); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(&fakeTool{name: "search"}); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := registry.Register(&fakeTool{name: ""}); err == nil {
		t.Error("empty name should fail")
	}

	if _, ok := registry.Get("search"); !ok {
		t.Error("registered tool not found")
	}
	if _, ok := registry.Get("missing"); ok {
		t.Error("unregistered tool found")
	}
	if registry.Len() != 1 {
		t.Errorf("Len = %d, want 1", registry.Len())
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := registry.Register(&fakeTool{name: name}); err != nil {
			t.Fatal(err)
		}
	}

	list := registry.List()
	want := []string{"alpha", "mid", "zeta"}
	if len(list) != len(want) {
		t.Fatalf("List length = %d", len(list))
	}
	for i, capability := range list {
		if capability.GetName() != want[i] {
			t.Errorf("List[%d] = %s, want %s", i, capability.GetName(), want[i])
		}
	}
}
