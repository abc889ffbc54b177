package loggers

import (
	"context"
	"io"
	"log/slog"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
)

// Dispatcher forwards every lifecycle event to a list of loggers, in the
// order they were registered. It implements ports.ProcessLogger itself so
// dispatchers can be nested.
type Dispatcher[C, N, S any] struct {
	loggers []ports.ProcessLogger[C, N, S]
	logger  *slog.Logger
	err     error
}

// Option defines a functional option for configuring the Dispatcher.
type Option[C, N, S any] func(*Dispatcher[C, N, S])

// WithLoggers appends loggers to the dispatch list.
func WithLoggers[C, N, S any](loggers ...ports.ProcessLogger[C, N, S]) Option[C, N, S] {
	return func(d *Dispatcher[C, N, S]) {
		d.loggers = append(d.loggers, loggers...)
	}
}

// WithLogger sets a custom structured logger for the dispatcher.
func WithLogger[C, N, S any](logger *slog.Logger) Option[C, N, S] {
	return func(d *Dispatcher[C, N, S]) {
		d.logger = logger
	}
}

// New creates a Dispatcher.
func New[C, N, S any](opts ...Option[C, N, S]) *Dispatcher[C, N, S] {
	d := &Dispatcher[C, N, S]{}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

var _ ports.ProcessLogger[struct{}, struct{}, struct{}] = (*Dispatcher[struct{}, struct{}, struct{}])(nil)

// Add registers another logger. It must be called before Initialize.
func (d *Dispatcher[C, N, S]) Add(l ports.ProcessLogger[C, N, S]) {
	d.loggers = append(d.loggers, l)
}

// Len returns the number of registered loggers.
func (d *Dispatcher[C, N, S]) Len() int {
	return len(d.loggers)
}

// Err returns the error that stopped the dispatch, if any.
func (d *Dispatcher[C, N, S]) Err() error {
	return d.err
}

func (d *Dispatcher[C, N, S]) Initialize(ctx context.Context) error {
	return d.each(domain.EventKind("initialize"), func(l ports.ProcessLogger[C, N, S]) error {
		return l.Initialize(ctx)
	})
}

func (d *Dispatcher[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	return d.each(domain.EventNodeDiscovered, func(l ports.ProcessLogger[C, N, S]) error {
		return l.NodeDiscovered(ctx, c, id, node)
	})
}

func (d *Dispatcher[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	return d.each(domain.EventStepRecorded, func(l ports.ProcessLogger[C, N, S]) error {
		return l.StepRecorded(ctx, c, origin, step, target, targetNode, depth)
	})
}

func (d *Dispatcher[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	return d.each(domain.EventNodeSubtreeComplete, func(l ports.ProcessLogger[C, N, S]) error {
		return l.NodeSubtreeComplete(ctx, c, id)
	})
}

func (d *Dispatcher[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	return d.each(domain.EventProcessTerminated, func(l ports.ProcessLogger[C, N, S]) error {
		return l.ProcessTerminated(ctx, c)
	})
}

func (d *Dispatcher[C, N, S]) each(kind domain.EventKind, call func(ports.ProcessLogger[C, N, S]) error) error {
	if d.err != nil {
		return d.err
	}
	for i, l := range d.loggers {
		if err := call(l); err != nil {
			d.logger.Error("logger failed, dispatch stopped",
				"event", kind,
				"logger_index", i,
				"err", err,
			)
			d.err = err
			return err
		}
	}
	return nil
}
