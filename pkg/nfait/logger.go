package nfait

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
)

// Logger builds an NFAIT mirroring the exploration it observes.
// It implements ports.ProcessLogger and is not safe for concurrent use.
type Logger[C, N, S any, L comparable] struct {
	builder Builder[C, N, S, L]
	logger  *slog.Logger

	// Deferred export on termination
	sink    ports.ArtifactSink
	name    string
	mermaid bool
	format  func(L) string

	// Node ids may be sparse (filtering, memoization), states are dense.
	stateIDs    map[domain.NodeID]int
	nextStateID int

	alphabet    map[L]struct{}
	finals      StateSet
	transitions map[int]map[L]StateSet
	epsilon     map[int]StateSet

	result *Automaton[L]
	err    error
}

// Option defines a functional option for configuring the Logger.
type Option[C, N, S any, L comparable] func(*Logger[C, N, S, L])

// WithLogger sets a custom structured logger.
func WithLogger[C, N, S any, L comparable](logger *slog.Logger) Option[C, N, S, L] {
	return func(l *Logger[C, N, S, L]) {
		l.logger = logger
	}
}

// WithSink exports the automaton as "<name>.json" into sink when the process terminates.
func WithSink[C, N, S any, L comparable](sink ports.ArtifactSink, name string) Option[C, N, S, L] {
	return func(l *Logger[C, N, S, L]) {
		l.sink = sink
		l.name = name
	}
}

// WithMermaid additionally exports a Mermaid diagram "<name>.mmd" in which
// inaccessible and non co-accessible states are highlighted.
func WithMermaid[C, N, S any, L comparable](enabled bool) Option[C, N, S, L] {
	return func(l *Logger[C, N, S, L]) {
		l.mermaid = enabled
	}
}

// WithLetterFormatter sets how letters are rendered in exported artifacts.
func WithLetterFormatter[C, N, S any, L comparable](format func(L) string) Option[C, N, S, L] {
	return func(l *Logger[C, N, S, L]) {
		l.format = format
	}
}

// New creates an NFAIT logger around the domain builder.
func New[C, N, S any, L comparable](builder Builder[C, N, S, L], opts ...Option[C, N, S, L]) *Logger[C, N, S, L] {
	l := &Logger[C, N, S, L]{
		builder:     builder,
		name:        "nfait",
		stateIDs:    make(map[domain.NodeID]int),
		alphabet:    make(map[L]struct{}),
		finals:      make(StateSet),
		transitions: make(map[int]map[L]StateSet),
		epsilon:     make(map[int]StateSet),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.format == nil {
		l.format = func(letter L) string { return fmt.Sprint(letter) }
	}
	return l
}

var _ ports.ProcessLogger[any, any, any] = (*Logger[any, any, any, string])(nil)

// Initialize is a no-op: the automaton is only exported on termination.
func (l *Logger[C, N, S, L]) Initialize(ctx context.Context) error {
	return l.err
}

// NodeDiscovered allocates the next state for id and records its finality.
func (l *Logger[C, N, S, L]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	if l.err != nil {
		return l.err
	}
	if _, seen := l.stateIDs[id]; seen {
		return l.fail(domain.NewContractViolation(domain.EventNodeDiscovered, id, domain.ErrDuplicateNode))
	}

	state := l.nextStateID
	l.nextStateID++
	l.stateIDs[id] = state

	if l.builder.IsNodeFinal(c, node) {
		l.finals.Add(state)
	}
	return nil
}

// StepRecorded adds a lettered or epsilon transition from origin's state to target's state.
func (l *Logger[C, N, S, L]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	if l.err != nil {
		return l.err
	}
	orig, ok := l.stateIDs[origin]
	if !ok {
		return l.fail(domain.NewContractViolation(domain.EventStepRecorded, origin, domain.ErrUnknownNode))
	}
	targ, ok := l.stateIDs[target]
	if !ok {
		return l.fail(domain.NewContractViolation(domain.EventStepRecorded, target, domain.ErrUnknownNode))
	}

	letter, ok := l.builder.StepIntoLetter(c, step)
	if !ok {
		targets, exists := l.epsilon[orig]
		if !exists {
			targets = make(StateSet)
			l.epsilon[orig] = targets
		}
		targets.Add(targ)
		return nil
	}

	l.alphabet[letter] = struct{}{}
	outgoing, exists := l.transitions[orig]
	if !exists {
		outgoing = make(map[L]StateSet)
		l.transitions[orig] = outgoing
	}
	targets, exists := outgoing[letter]
	if !exists {
		targets = make(StateSet)
		outgoing[letter] = targets
	}
	targets.Add(targ)
	return nil
}

// NodeSubtreeComplete is ignored: automaton states live until termination.
func (l *Logger[C, N, S, L]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	return l.err
}

// ProcessTerminated finalizes the automaton and runs the deferred export.
// Export failures are logged and do not fail the run.
func (l *Logger[C, N, S, L]) ProcessTerminated(ctx context.Context, c C) error {
	if l.err != nil {
		return l.err
	}
	l.result = l.Automaton()
	l.logger.Debug("nfait finalized",
		"states", l.result.NumStates(),
		"letters", len(l.result.Alphabet),
		"finals", len(l.result.Finals),
	)

	if l.sink != nil {
		if err := l.export(ctx, l.result); err != nil {
			l.logger.Warn("failed to export automaton", "name", l.name, "err", err)
		}
	}
	return nil
}

// Result returns the automaton finalized by ProcessTerminated, or nil before termination.
func (l *Logger[C, N, S, L]) Result() *Automaton[L] {
	return l.result
}

// Err returns the contract violation that stopped the logger, if any.
func (l *Logger[C, N, S, L]) Err() error {
	return l.err
}

// StateOf returns the automaton state allocated to a discovered node.
func (l *Logger[C, N, S, L]) StateOf(id domain.NodeID) (int, bool) {
	st, ok := l.stateIDs[id]
	return st, ok
}

// Automaton densifies what has been recorded so far. Every state in
// [0, nextStateID) gets a transition row and an epsilon row, empty when
// nothing was recorded for it. The returned value shares nothing with the logger.
func (l *Logger[C, N, S, L]) Automaton() *Automaton[L] {
	transitions := make([]map[L]StateSet, l.nextStateID)
	epsilon := make([]StateSet, l.nextStateID)

	for st := 0; st < l.nextStateID; st++ {
		row := make(map[L]StateSet)
		for letter, targets := range l.transitions[st] {
			row[letter] = targets.Clone()
		}
		transitions[st] = row

		if targets, ok := l.epsilon[st]; ok {
			epsilon[st] = targets.Clone()
		} else {
			epsilon[st] = make(StateSet)
		}
	}

	alphabet := make(map[L]struct{}, len(l.alphabet))
	for letter := range l.alphabet {
		alphabet[letter] = struct{}{}
	}

	return &Automaton[L]{
		Alphabet:    alphabet,
		Initials:    NewStateSet(0),
		Finals:      l.finals.Clone(),
		Transitions: transitions,
		Epsilon:     epsilon,
	}
}

func (l *Logger[C, N, S, L]) fail(v *domain.ContractViolation) error {
	l.err = v
	l.logger.Error("contract violation", "event", v.Event, "node_id", v.NodeID, "err", v.Err)
	return v
}
