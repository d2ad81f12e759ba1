package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ponder-ai/ponder/pkg/agent"
	"github.com/ponder-ai/ponder/pkg/config"
	"github.com/ponder-ai/ponder/pkg/llms"
	"github.com/ponder-ai/ponder/pkg/logger"
	"github.com/ponder-ai/ponder/pkg/reasoning"
	"github.com/ponder-ai/ponder/pkg/tools"
)

// ChatCmd runs an interactive reasoning session on stdin.
type ChatCmd struct {
	Question string `arg:"" optional:"" help:"Ask a single question and exit."`
}

func (c *ChatCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	// Config file logging settings apply when the flags were left at their
	// defaults.
	if cli.LogLevel == "info" && cli.LogFile == "" && cfg.Logging.Level != "info" {
		logger.Init(logger.ParseLevel(cfg.Logging.Level), os.Stderr, cfg.Logging.Format)
	}

	llm, err := llms.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	coordinator, err := agent.New(cfg.Reasoning, llm, tools.NewRegistry(), nil)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.Question != "" {
		return handleOnce(ctx, coordinator, c.Question)
	}

	fmt.Printf("ponder %s (strategy: %s). Type 'exit' to quit.\n", version, cfg.Reasoning.PrimaryStrategy)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		if err := handleOnce(ctx, coordinator, input); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func handleOnce(ctx context.Context, coordinator *agent.Coordinator, input string) error {
	resp, err := coordinator.Handle(ctx, input)
	if resp != nil && resp.Text != "" {
		fmt.Println(resp.Text)
	}
	return err
}

// StrategiesCmd lists the reasoning strategies the catalog offers.
type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(cli *CLI) error {
	catalog := reasoning.NewCatalog()
	for _, id := range catalog.IDs() {
		strategy, err := catalog.Get(id)
		if err != nil {
			return err
		}
		fmt.Printf("%-18s required: %s\n", id, strings.Join(strategy.Required, ", "))
	}
	return nil
}

// ValidateCmd checks a configuration file without starting anything.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI) error {
	if cli.Config == "" {
		return fmt.Errorf("--config is required for validate")
	}
	cfg, err := config.LoadFromFile(cli.Config)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Printf("Configuration valid: provider=%s model=%s primary_strategy=%s fallbacks=%s\n",
		cfg.LLM.Type, cfg.LLM.Model, cfg.Reasoning.PrimaryStrategy,
		strings.Join(cfg.Reasoning.FallbackStrategies, ","))
	return nil
}
