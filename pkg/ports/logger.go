package ports

import (
	"context"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
)

// ProcessLogger observes one run of an exploration engine.
// C is the process context, N the domain node and S the domain step.
//
// Callers must deliver a node's discovery before any step referencing it and a
// node's subtree-complete notice only after every step originating from it.
// A logger answers a broken ordering with a *domain.ContractViolation and
// refuses every later event.
type ProcessLogger[C, N, S any] interface {
	// Initialize prepares the logger before the first event (e.g. clears its output).
	Initialize(ctx context.Context) error

	// NodeDiscovered is called once per node, when the engine creates it.
	NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error

	// StepRecorded is called for each step from origin to target.
	// depth is the depth of the target node in the exploration.
	StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error

	// NodeSubtreeComplete is called once every step originating from id was delivered.
	NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error

	// ProcessTerminated is called once, when the exploration ends.
	ProcessTerminated(ctx context.Context, c C) error
}
