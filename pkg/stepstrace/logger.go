package stepstrace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
)

// Logger is the path-object tracer. It implements ports.ProcessLogger and is
// not safe for concurrent use.
type Logger[C, N, S any, O Object] struct {
	printer Printer[C, N, S, O]
	sink    ports.ArtifactSink
	logger  *slog.Logger

	prefix    string
	extension string
	rootID    domain.NodeID

	// frontier holds, per open node, the distinct objects reaching it keyed by Object.Key.
	frontier map[domain.NodeID]map[string]O
	// memo is nil unless deduplication is enabled.
	memo map[string]struct{}

	// Ids grow strictly with discovery, so the highest one is enough to spot a rediscovery.
	lastID  domain.NodeID
	started bool

	counter uint32
	err     error
}

// Option defines a functional option for configuring the Logger.
type Option[C, N, S any, O Object] func(*Logger[C, N, S, O])

// WithLogger sets a custom structured logger.
func WithLogger[C, N, S any, O Object](logger *slog.Logger) Option[C, N, S, O] {
	return func(l *Logger[C, N, S, O]) {
		l.logger = logger
	}
}

// WithDeduplication makes the tracer emit each distinct object at most once per run.
func WithDeduplication[C, N, S any, O Object](enabled bool) Option[C, N, S, O] {
	return func(l *Logger[C, N, S, O]) {
		if enabled {
			l.memo = make(map[string]struct{})
		} else {
			l.memo = nil
		}
	}
}

// WithNaming sets the artifact names to "<prefix><counter>.<extension>".
func WithNaming[C, N, S any, O Object](prefix, extension string) Option[C, N, S, O] {
	return func(l *Logger[C, N, S, O]) {
		l.prefix = prefix
		l.extension = extension
	}
}

// WithRootID sets the id of the node seeded with the initial object (default: domain.RootNodeID).
func WithRootID[C, N, S any, O Object](id domain.NodeID) Option[C, N, S, O] {
	return func(l *Logger[C, N, S, O]) {
		l.rootID = id
	}
}

// New creates a tracer emitting into sink.
func New[C, N, S any, O Object](printer Printer[C, N, S, O], sink ports.ArtifactSink, opts ...Option[C, N, S, O]) *Logger[C, N, S, O] {
	l := &Logger[C, N, S, O]{
		printer:   printer,
		sink:      sink,
		prefix:    "trace",
		extension: "txt",
		rootID:    domain.RootNodeID,
		frontier:  make(map[domain.NodeID]map[string]O),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Initialize clears the sink. A failure is reported but does not stop the run.
func (l *Logger[C, N, S, O]) Initialize(ctx context.Context) error {
	if l.err != nil {
		return l.err
	}
	if err := l.sink.Reset(ctx); err != nil {
		l.logger.Warn("failed to reset trace output", "err", err)
	}
	return nil
}

// NodeDiscovered opens the frontier entry of id: the initial object for the
// root, an empty set for any other node.
func (l *Logger[C, N, S, O]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	if l.err != nil {
		return l.err
	}
	if l.started && id <= l.lastID {
		return l.fail(domain.NewContractViolation(domain.EventNodeDiscovered, id, domain.ErrDuplicateNode))
	}
	l.started = true
	l.lastID = id

	objects := make(map[string]O)
	if id == l.rootID {
		initial := l.printer.InitialObject(c, node)
		objects[initial.Key()] = initial
	}
	l.frontier[id] = objects
	return nil
}

// StepRecorded extends every object at origin with step, emits the new ones
// if the target qualifies and merges them into the target's frontier entry.
func (l *Logger[C, N, S, O]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	if l.err != nil {
		return l.err
	}
	parentObjects, ok := l.frontier[origin]
	if !ok {
		return l.fail(domain.NewContractViolation(domain.EventStepRecorded, origin, domain.ErrNoFrontier))
	}
	targetObjects, ok := l.frontier[target]
	if !ok {
		return l.fail(domain.NewContractViolation(domain.EventStepRecorded, target, domain.ErrNoFrontier))
	}

	candidates := make(map[string]O, len(parentObjects))
	for _, o := range parentObjects {
		next := l.printer.AddStep(c, o, step)
		key := next.Key()
		if l.memo != nil {
			if _, done := l.memo[key]; done {
				continue
			}
		}
		candidates[key] = next
	}

	if len(candidates) > 0 && l.printer.ShouldEmit(c, targetNode, depth) {
		// Sorted so that artifact numbering does not depend on map iteration order.
		keys := make([]string, 0, len(candidates))
		for key := range candidates {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			l.emit(ctx, c, candidates[key], target)
			if l.memo != nil {
				l.memo[key] = struct{}{}
			}
		}
	}

	for key, o := range candidates {
		targetObjects[key] = o
	}
	return nil
}

// NodeSubtreeComplete releases every object held for id.
func (l *Logger[C, N, S, O]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	if l.err != nil {
		return l.err
	}
	if _, ok := l.frontier[id]; !ok {
		return l.fail(domain.NewContractViolation(domain.EventNodeSubtreeComplete, id, domain.ErrNoFrontier))
	}
	delete(l.frontier, id)
	return nil
}

// ProcessTerminated only reports a summary; the frontier is left as the engine left it.
func (l *Logger[C, N, S, O]) ProcessTerminated(ctx context.Context, c C) error {
	if l.err != nil {
		return l.err
	}
	l.logger.Debug("steps trace finished",
		"emitted", l.counter,
		"open_nodes", len(l.frontier),
	)
	return nil
}

// Emitted returns how many artifacts were emitted (including failed writes).
func (l *Logger[C, N, S, O]) Emitted() uint32 {
	return l.counter
}

// FrontierWidth returns the number of open frontier entries.
func (l *Logger[C, N, S, O]) FrontierWidth() int {
	return len(l.frontier)
}

// Frontier returns the objects currently held for id, ordered by key.
func (l *Logger[C, N, S, O]) Frontier(id domain.NodeID) ([]O, bool) {
	objects, ok := l.frontier[id]
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(objects))
	for key := range objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]O, 0, len(keys))
	for _, key := range keys {
		out = append(out, objects[key])
	}
	return out, true
}

// Err returns the contract violation that stopped the logger, if any.
func (l *Logger[C, N, S, O]) Err() error {
	return l.err
}

// ArtifactName returns the name given to the n-th emitted object.
func (l *Logger[C, N, S, O]) ArtifactName(n uint32) string {
	return fmt.Sprintf("%s%d.%s", l.prefix, n, l.extension)
}

func (l *Logger[C, N, S, O]) emit(ctx context.Context, c C, object O, target domain.NodeID) {
	l.counter++
	name := l.ArtifactName(l.counter)

	data, err := l.printer.Print(c, object)
	if err != nil {
		l.logger.Warn("failed to print object", "artifact", name, "node_id", target, "err", err)
		return
	}
	if err := l.sink.Write(ctx, name, data); err != nil {
		l.logger.Warn("failed to write object", "artifact", name, "node_id", target, "err", err)
		return
	}
	l.logger.Debug("object emitted", "artifact", name, "node_id", target)
}

func (l *Logger[C, N, S, O]) fail(v *domain.ContractViolation) error {
	l.err = v
	l.logger.Error("contract violation", "event", v.Event, "node_id", v.NodeID, "err", v.Err)
	return v
}
