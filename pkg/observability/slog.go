package observability

import (
	"context"
	"log/slog"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
)

// SlogLogger emits every event to a slog.Logger. The event kind becomes the
// log message and ids are attached as attributes.
type SlogLogger[C, N, S any] struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger creates a SlogLogger emitting at level.
func NewSlogLogger[C, N, S any](logger *slog.Logger, level slog.Level) *SlogLogger[C, N, S] {
	return &SlogLogger[C, N, S]{logger: logger, level: level}
}

func (o *SlogLogger[C, N, S]) Initialize(ctx context.Context) error {
	o.logger.LogAttrs(ctx, o.level, "process_initialized")
	return nil
}

func (o *SlogLogger[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	o.logger.LogAttrs(ctx, o.level, string(domain.EventNodeDiscovered),
		slog.Uint64("node_id", uint64(id)),
	)
	return nil
}

func (o *SlogLogger[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	o.logger.LogAttrs(ctx, o.level, string(domain.EventStepRecorded),
		slog.Uint64("origin", uint64(origin)),
		slog.Uint64("target", uint64(target)),
		slog.Uint64("depth", uint64(depth)),
		slog.Any("step", step),
	)
	return nil
}

func (o *SlogLogger[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	o.logger.LogAttrs(ctx, o.level, string(domain.EventNodeSubtreeComplete),
		slog.Uint64("node_id", uint64(id)),
	)
	return nil
}

func (o *SlogLogger[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	o.logger.LogAttrs(ctx, o.level, string(domain.EventProcessTerminated))
	return nil
}
