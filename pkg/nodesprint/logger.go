// Package nodesprint writes one artifact per discovered node that the domain
// chooses to print.
package nodesprint

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
)

// Printer decides which nodes are printed and how.
type Printer[C, N any] interface {
	ShouldPrint(c C, node N) bool
	Print(c C, node N) ([]byte, error)
}

// Logger prints nodes as they are discovered into a sink, under
// "<prefix>_node<id>.<extension>".
type Logger[C, N, S any] struct {
	printer   Printer[C, N]
	sink      ports.ArtifactSink
	logger    *slog.Logger
	prefix    string
	extension string
	printed   int
}

// Option defines a functional option for configuring the Logger.
type Option[C, N, S any] func(*Logger[C, N, S])

// WithLogger sets a custom structured logger.
func WithLogger[C, N, S any](logger *slog.Logger) Option[C, N, S] {
	return func(l *Logger[C, N, S]) {
		l.logger = logger
	}
}

// WithNaming sets the artifact prefix and extension.
func WithNaming[C, N, S any](prefix, extension string) Option[C, N, S] {
	return func(l *Logger[C, N, S]) {
		l.prefix = prefix
		l.extension = extension
	}
}

// New creates a node printer logger.
func New[C, N, S any](printer Printer[C, N], sink ports.ArtifactSink, opts ...Option[C, N, S]) *Logger[C, N, S] {
	l := &Logger[C, N, S]{
		printer:   printer,
		sink:      sink,
		prefix:    "node",
		extension: "txt",
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Initialize clears the sink.
func (l *Logger[C, N, S]) Initialize(ctx context.Context) error {
	if err := l.sink.Reset(ctx); err != nil {
		l.logger.Warn("failed to reset node output", "err", err)
	}
	return nil
}

func (l *Logger[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	if !l.printer.ShouldPrint(c, node) {
		return nil
	}
	name := l.ArtifactName(id)
	data, err := l.printer.Print(c, node)
	if err != nil {
		l.logger.Warn("failed to print node", "artifact", name, "err", err)
		return nil
	}
	if err := l.sink.Write(ctx, name, data); err != nil {
		l.logger.Warn("failed to write node", "artifact", name, "err", err)
		return nil
	}
	l.printed++
	return nil
}

func (l *Logger[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	return nil
}

func (l *Logger[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	return nil
}

func (l *Logger[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	return nil
}

// Printed returns how many node artifacts were written.
func (l *Logger[C, N, S]) Printed() int {
	return l.printed
}

// ArtifactName returns the artifact name of node id.
func (l *Logger[C, N, S]) ArtifactName(id domain.NodeID) string {
	return fmt.Sprintf("%s_node%d.%s", l.prefix, id, l.extension)
}
