package tui

import (
	"fmt"
	"strings"
)

// AutomatonSummary describes the automaton built during a run.
type AutomatonSummary struct {
	Name         string
	States       int
	Letters      int
	Finals       int
	Accessible   int
	CoAccessible int
}

// TraceSummary describes what a path tracer emitted.
type TraceSummary struct {
	Emitted      uint32
	OpenFrontier int
}

// Summary is the end-of-run report printed by `gpmlog replay`.
type Summary struct {
	Trace     string
	Events    int
	Sink      string
	Location  string
	Automaton *AutomatonSummary
	Paths     *TraceSummary
	Nodes     *int
	Artifacts []string
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Replay of `%s`\n\n", s.Trace)
	fmt.Fprintf(&b, "%d events replayed, artifacts in **%s** `%s`.\n\n", s.Events, s.Sink, s.Location)

	if a := s.Automaton; a != nil {
		fmt.Fprintf(&b, "## Automaton `%s`\n\n", a.Name)
		b.WriteString("| states | letters | finals | accessible | co-accessible |\n")
		b.WriteString("|---|---|---|---|---|\n")
		fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", a.States, a.Letters, a.Finals, a.Accessible, a.CoAccessible)
	}

	if p := s.Paths; p != nil {
		b.WriteString("## Paths\n\n")
		fmt.Fprintf(&b, "- emitted: %d\n", p.Emitted)
		fmt.Fprintf(&b, "- open frontier at end: %d\n\n", p.OpenFrontier)
	}

	if s.Nodes != nil {
		b.WriteString("## Nodes\n\n")
		fmt.Fprintf(&b, "- printed: %d\n\n", *s.Nodes)
	}

	if len(s.Artifacts) > 0 {
		b.WriteString("## Artifacts\n\n")
		for _, name := range s.Artifacts {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
	}
	return b.String()
}
