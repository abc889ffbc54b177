package observability

import (
	"context"
	"time"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
)

// HooksLogger adapts domain.LifecycleHooks to ports.ProcessLogger.
type HooksLogger[C, N, S any] struct {
	hooks domain.LifecycleHooks
	now   func() time.Time
}

// NewHooksLogger creates a logger forwarding each event to the matching hook.
func NewHooksLogger[C, N, S any](hooks domain.LifecycleHooks) *HooksLogger[C, N, S] {
	return &HooksLogger[C, N, S]{hooks: hooks, now: time.Now}
}

func (h *HooksLogger[C, N, S]) Initialize(ctx context.Context) error {
	return nil
}

func (h *HooksLogger[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	if h.hooks.OnNodeDiscovered != nil {
		h.hooks.OnNodeDiscovered(ctx, &domain.Event{
			Timestamp: h.now(),
			Kind:      domain.EventNodeDiscovered,
			NodeID:    id,
		})
	}
	return nil
}

func (h *HooksLogger[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	if h.hooks.OnStepRecorded != nil {
		h.hooks.OnStepRecorded(ctx, &domain.Event{
			Timestamp: h.now(),
			Kind:      domain.EventStepRecorded,
			Origin:    origin,
			Target:    target,
			Depth:     depth,
		})
	}
	return nil
}

func (h *HooksLogger[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	if h.hooks.OnNodeSubtreeComplete != nil {
		h.hooks.OnNodeSubtreeComplete(ctx, &domain.Event{
			Timestamp: h.now(),
			Kind:      domain.EventNodeSubtreeComplete,
			NodeID:    id,
		})
	}
	return nil
}

func (h *HooksLogger[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	if h.hooks.OnProcessTerminated != nil {
		h.hooks.OnProcessTerminated(ctx, &domain.Event{
			Timestamp: h.now(),
			Kind:      domain.EventProcessTerminated,
		})
	}
	return nil
}
