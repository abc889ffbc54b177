package graph

import (
	"fmt"
	"strings"
)

// AutomatonEdge is one transition of an automaton view.
type AutomatonEdge struct {
	From    int
	To      int
	Label   string
	Epsilon bool
}

// AutomatonView is the presentation-only description of an automaton.
// States are the integers [0, NumStates).
type AutomatonView struct {
	NumStates int
	Initials  []int
	Finals    []int
	Edges     []AutomatonEdge
}

// AutomatonOverlay contains reachability data to visualize on the graph.
type AutomatonOverlay struct {
	Accessible   []int
	CoAccessible []int
}

// GenerateAutomatonMermaid produces a Mermaid flowchart syntax string from an automaton view.
// It applies semantic styling:
// - Final: (((Double Circle)))
// - Default: ((Circle))
// - Initial: an entry arrow from an invisible point
// - Epsilon: dotted arrow labelled ε
// It also greys out states that are not accessible or not co-accessible if an overlay is provided.
func GenerateAutomatonMermaid(view AutomatonView, overlay *AutomatonOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	finals := make(map[int]bool, len(view.Finals))
	for _, f := range view.Finals {
		finals[f] = true
	}

	for st := 0; st < view.NumStates; st++ {
		id := stateID(st)
		if finals[st] {
			sb.WriteString(fmt.Sprintf("    %s(((\"%d\")))\n", id, st))
		} else {
			sb.WriteString(fmt.Sprintf("    %s((\"%d\"))\n", id, st))
		}
	}

	for _, st := range view.Initials {
		if st >= view.NumStates {
			continue
		}
		sb.WriteString(fmt.Sprintf("    init_%d[ ] --> %s\n", st, stateID(st)))
		sb.WriteString(fmt.Sprintf("    style init_%d fill:none,stroke:none\n", st))
	}

	for _, e := range view.Edges {
		if e.Epsilon {
			sb.WriteString(fmt.Sprintf("    %s -. \"ε\" .-> %s\n", stateID(e.From), stateID(e.To)))
			continue
		}
		// Escape double quotes in label for Mermaid
		safeLabel := strings.ReplaceAll(e.Label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", stateID(e.From), safeLabel, stateID(e.To)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef dead fill:#eeeeee,stroke:#9e9e9e,color:#9e9e9e;\n")

		live := make(map[int]int, view.NumStates)
		for _, st := range overlay.Accessible {
			live[st]++
		}
		for _, st := range overlay.CoAccessible {
			live[st]++
		}
		for st := 0; st < view.NumStates; st++ {
			if live[st] < 2 {
				sb.WriteString(fmt.Sprintf("    class %s dead;\n", stateID(st)))
			}
		}
	}

	return sb.String()
}

func stateID(st int) string {
	return fmt.Sprintf("s%d", st)
}
