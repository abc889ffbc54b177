package replay

import (
	"context"
	"fmt"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
)

// Run initializes logger and feeds it every event of trace in order.
// It stops at the first error, either a malformed payload or an error
// returned by the logger. Run does not add a process_terminated event that
// the trace does not contain.
func Run(ctx context.Context, trace *Trace, logger ports.ProcessLogger[Context, Node, Step]) error {
	c := Context{Name: trace.Name}
	nodes := make(map[domain.NodeID]Node)

	if err := logger.Initialize(ctx); err != nil {
		return err
	}

	for i, e := range trace.Events {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch e.Kind {
		case domain.EventNodeDiscovered:
			var n Node
			if derr := decodePayload(e.Data, &n); derr != nil {
				return fmt.Errorf("%w: event %d: %v", ErrInvalidTrace, i, derr)
			}
			nodes[e.Node] = n
			err = logger.NodeDiscovered(ctx, c, e.Node, n)

		case domain.EventStepRecorded:
			var s Step
			if derr := decodePayload(e.Data, &s); derr != nil {
				return fmt.Errorf("%w: event %d: %v", ErrInvalidTrace, i, derr)
			}
			// An unknown target is passed as a zero Node; the loggers report it.
			err = logger.StepRecorded(ctx, c, e.Origin, s, e.Target, nodes[e.Target], e.Depth)

		case domain.EventNodeSubtreeComplete:
			delete(nodes, e.Node)
			err = logger.NodeSubtreeComplete(ctx, c, e.Node)

		case domain.EventProcessTerminated:
			err = logger.ProcessTerminated(ctx, c)

		default:
			return fmt.Errorf("%w: event %d has unknown kind %q", ErrInvalidTrace, i, e.Kind)
		}
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}
