package reasoning

import (
	"regexp"
	"strings"
)

// containerTag is the top-level wrapper around every reasoning block. It is
// structural, never a section of its own.
const containerTag = "reasoning"

// openTagRe matches an opening tag, optionally with attributes (tree
// branches carry id attributes). Tag names are case-sensitive ASCII.
var openTagRe = regexp.MustCompile(`<([a-zA-Z_][a-zA-Z0-9_]*)(\s[^<>]*)?>`)

// ParsedOutput is the structured record of one model response. Parsing is a
// pure function of (text, strategy): no hidden state, same input always
// yields the same record.
type ParsedOutput struct {
	// Strategy is the strategy the output was validated against.
	Strategy StrategyID

	// Sections maps known (required or optional) tags to trimmed content.
	Sections map[string]string

	// Extra holds tags present in the output but unknown to the strategy.
	// They are preserved, not silently dropped.
	Extra map[string]string

	// entries preserves every captured tag with its position, so the
	// output can be re-serialized without duplicating nested sections.
	entries []sectionEntry
}

type sectionEntry struct {
	tag        string
	content    string
	start, end int
}

// ParseOutput extracts tagged sections from raw model output and validates
// them against the active strategy's contract.
//
// The parser is tolerant of prose outside tags, surrounding whitespace, and
// unclosed stray tags. When required sections are missing it still returns
// the partial record alongside a MissingRequiredSectionError naming every
// absent tag, so callers can trace what the step did produce.
func ParseOutput(raw string, strategy *Strategy) (*ParsedOutput, error) {
	out := &ParsedOutput{
		Strategy: strategy.ID,
		Sections: make(map[string]string),
		Extra:    make(map[string]string),
	}

	for _, entry := range extractEntries(raw) {
		target := out.Extra
		if strategy.HasSection(entry.tag) {
			target = out.Sections
		}
		if existing, ok := target[entry.tag]; ok {
			target[entry.tag] = existing + "\n\n" + entry.content
		} else {
			target[entry.tag] = entry.content
		}
		out.entries = append(out.entries, entry)
	}

	var missing []string
	for _, tag := range strategy.Required {
		if _, ok := out.Sections[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return out, &MissingRequiredSectionError{Strategy: strategy.ID, Missing: missing}
	}
	return out, nil
}

// extractEntries scans raw text for every well-formed tagged section,
// including sections nested inside others. Unclosed tags are skipped.
func extractEntries(raw string) []sectionEntry {
	var entries []sectionEntry

	offset := 0
	for {
		loc := openTagRe.FindStringSubmatchIndex(raw[offset:])
		if loc == nil {
			break
		}

		openStart := offset + loc[0]
		openEnd := offset + loc[1]
		tag := raw[offset+loc[2] : offset+loc[3]]

		// Resume scanning just past the opening tag so nested sections
		// (branch markers inside process, etc.) are also captured.
		offset = openEnd

		if tag == containerTag {
			continue
		}

		closeIdx := strings.Index(raw[openEnd:], "</"+tag+">")
		if closeIdx < 0 {
			continue
		}

		entries = append(entries, sectionEntry{
			tag:     tag,
			content: strings.TrimSpace(raw[openEnd : openEnd+closeIdx]),
			start:   openStart,
			end:     openEnd + closeIdx + len("</"+tag+">"),
		})
	}

	return entries
}

// HasConclusion reports whether the output carries a non-empty conclusion
// section. This is only the completion candidate; the controller decides
// completion using budgets and rotation state.
func (p *ParsedOutput) HasConclusion() bool {
	return strings.TrimSpace(p.Sections[SectionConclusion]) != ""
}

// Section returns a known section's content ("" when absent).
func (p *ParsedOutput) Section(tag string) string {
	return p.Sections[tag]
}

// Components returns the presence map of every tag the strategy knows,
// plus any extra tags found (always true for those).
func (p *ParsedOutput) Components(strategy *Strategy) map[string]bool {
	components := make(map[string]bool, len(strategy.Required)+len(strategy.Optional)+len(p.Extra))
	for _, tag := range strategy.Required {
		_, ok := p.Sections[tag]
		components[tag] = ok
	}
	for _, tag := range strategy.Optional {
		_, ok := p.Sections[tag]
		components[tag] = ok
	}
	for tag := range p.Extra {
		components[tag] = true
	}
	return components
}

// Depth derives the step's depth: the number of base sections present.
func (p *ParsedOutput) Depth() int {
	depth := 0
	for _, tag := range BaseSections {
		if _, ok := p.Sections[tag]; ok {
			depth++
		}
	}
	return depth
}

// Render serializes the record back to the tagged wire format. Only
// top-level sections are emitted; sections nested inside another captured
// section ride along in their parent's content, so render-then-parse yields
// the same record.
func (p *ParsedOutput) Render() string {
	var sb strings.Builder
	sb.WriteString("<" + containerTag + ">\n")

	for i, entry := range p.entries {
		if p.isNested(i) {
			continue
		}
		sb.WriteString("  <" + entry.tag + ">\n")
		sb.WriteString(indent(entry.content, "    "))
		sb.WriteString("\n  </" + entry.tag + ">\n")
	}

	sb.WriteString("</" + containerTag + ">")
	return sb.String()
}

func (p *ParsedOutput) isNested(i int) bool {
	entry := p.entries[i]
	for j, other := range p.entries {
		if j == i {
			continue
		}
		if entry.start > other.start && entry.end <= other.end {
			return true
		}
	}
	return false
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
