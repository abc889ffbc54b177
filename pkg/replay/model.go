package replay

import (
	"fmt"
	"strings"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/nfait"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/stepstrace"
	"github.com/mitchellh/mapstructure"
)

// Context is the process context of a replayed run.
type Context struct {
	Name string
}

// Node is the payload of a node_discovered event.
type Node struct {
	Label string `mapstructure:"label"`
	Final bool   `mapstructure:"final"`
	// Emit selects the node for path emission. Nil means yes.
	Emit *bool `mapstructure:"emit"`
}

// Step is the payload of a step_recorded event. Silent steps carry no letter.
type Step struct {
	Label  string `mapstructure:"label"`
	Silent bool   `mapstructure:"silent"`
}

// Path is the sequence of step labels followed from the root.
type Path []string

// Key joins the labels with a separator that cannot appear in YAML scalars by accident.
func (p Path) Key() string {
	return strings.Join(p, "\x1f")
}

func decodePayload(data map[string]any, out any) error {
	if len(data) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

// AutomatonBuilder maps step labels to letters and "final" nodes to accepting states.
func AutomatonBuilder() nfait.Funcs[Context, Node, Step, string] {
	return nfait.Funcs[Context, Node, Step, string]{
		StepToLetter: func(_ Context, s Step) (string, bool) {
			if s.Silent || s.Label == "" {
				return "", false
			}
			return s.Label, true
		},
		NodeFinal: func(_ Context, n Node) bool {
			return n.Final
		},
	}
}

// PathPrinter records the labels of non-silent steps and renders a path as
// one label per line under a header naming the run.
func PathPrinter() stepstrace.Funcs[Context, Node, Step, Path] {
	return stepstrace.Funcs[Context, Node, Step, Path]{
		Initial: func(_ Context, _ Node) Path {
			return Path{}
		},
		Extend: func(_ Context, p Path, s Step) Path {
			if s.Silent || s.Label == "" {
				return p
			}
			next := make(Path, len(p), len(p)+1)
			copy(next, p)
			return append(next, s.Label)
		},
		Emit: func(_ Context, n Node, _ uint32) bool {
			return n.Emit == nil || *n.Emit
		},
		Render: func(c Context, p Path) ([]byte, error) {
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n", c.Name)
			for _, label := range p {
				b.WriteString(label)
				b.WriteByte('\n')
			}
			return []byte(b.String()), nil
		},
	}
}

// NodePrinter prints the label of final nodes.
type NodePrinter struct{}

func (NodePrinter) ShouldPrint(_ Context, n Node) bool {
	return n.Final
}

func (NodePrinter) Print(_ Context, n Node) ([]byte, error) {
	return []byte(n.Label + "\n"), nil
}
