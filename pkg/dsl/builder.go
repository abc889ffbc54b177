package dsl

import (
	"errors"
	"fmt"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/replay"
)

// ErrEmptyGraph is returned when Build is called before any node was added.
var ErrEmptyGraph = errors.New("graph has no nodes")

// ErrUnknownTarget is returned when a step points to a node that was never added.
var ErrUnknownTarget = errors.New("step to undeclared node")

// ErrUnreachable is returned when a declared node cannot be reached from the root.
var ErrUnreachable = errors.New("node unreachable from root")

// Builder manages the graph construction.
type Builder struct {
	name  string
	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new graph builder for a trace called name.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph. The first node added is the root.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(name string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{name: name}
	b.nodes[name] = nb
	b.order = append(b.order, name)
	return nb
}

// walk holds the state of one Build.
type walk struct {
	b        *Builder
	events   []replay.Event
	ids      map[string]domain.NodeID
	depth    map[string]uint32
	pending  map[string]int
	expanded map[string]bool
	done     map[string]bool
	nextID   domain.NodeID
}

// Build compiles the graph into a trace ending with process_terminated.
func (b *Builder) Build() (*replay.Trace, error) {
	if len(b.order) == 0 {
		return nil, ErrEmptyGraph
	}

	// Incoming step counts decide when a shared node can be reclaimed.
	pending := make(map[string]int, len(b.nodes))
	for _, name := range b.order {
		for _, s := range b.nodes[name].steps {
			if _, ok := b.nodes[s.target]; !ok {
				return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownTarget, name, s.target)
			}
			pending[s.target]++
		}
	}

	w := &walk{
		b:        b,
		ids:      make(map[string]domain.NodeID, len(b.nodes)),
		depth:    make(map[string]uint32, len(b.nodes)),
		pending:  pending,
		expanded: make(map[string]bool, len(b.nodes)),
		done:     make(map[string]bool, len(b.nodes)),
		nextID:   domain.RootNodeID,
	}

	root := b.order[0]
	w.discover(root, 0)
	w.visit(root)

	for _, name := range b.order {
		if _, ok := w.ids[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnreachable, name)
		}
	}

	w.events = append(w.events, replay.Event{Kind: domain.EventProcessTerminated})
	return &replay.Trace{Name: b.name, Events: w.events}, nil
}

func (w *walk) discover(name string, depth uint32) {
	id := w.nextID
	w.nextID++
	w.ids[name] = id
	w.depth[name] = depth
	w.events = append(w.events, replay.Event{
		Kind: domain.EventNodeDiscovered,
		Node: id,
		Data: w.b.nodes[name].data(),
	})
}

func (w *walk) visit(name string) {
	nb := w.b.nodes[name]
	for _, s := range nb.steps {
		_, seen := w.ids[s.target]
		if !seen {
			w.discover(s.target, w.depth[name]+1)
		}
		w.events = append(w.events, replay.Event{
			Kind:   domain.EventStepRecorded,
			Origin: w.ids[name],
			Target: w.ids[s.target],
			Depth:  w.depth[name] + 1,
			Data:   s.data(),
		})
		w.pending[s.target]--
		if !seen {
			w.visit(s.target)
		} else {
			w.tryComplete(s.target)
		}
	}
	w.expanded[name] = true
	w.tryComplete(name)
}

func (w *walk) tryComplete(name string) {
	if w.done[name] || !w.expanded[name] || w.pending[name] > 0 {
		return
	}
	w.events = append(w.events, replay.Event{
		Kind: domain.EventNodeSubtreeComplete,
		Node: w.ids[name],
	})
	w.done[name] = true
}
