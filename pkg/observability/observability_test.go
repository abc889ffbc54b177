package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	_ ports.ProcessLogger[struct{}, string, string] = (*HooksLogger[struct{}, string, string])(nil)
	_ ports.ProcessLogger[struct{}, string, string] = (*SlogLogger[struct{}, string, string])(nil)
	_ ports.ProcessLogger[struct{}, string, string] = (*SpanLogger[struct{}, string, string])(nil)
)

// drive replays root -a-> 2 -b-> 3 with full reclamation.
func drive(t *testing.T, l ports.ProcessLogger[struct{}, string, string]) {
	t.Helper()
	ctx := context.Background()
	c := struct{}{}
	require.NoError(t, l.Initialize(ctx))
	require.NoError(t, l.NodeDiscovered(ctx, c, 1, "root"))
	require.NoError(t, l.NodeDiscovered(ctx, c, 2, "n2"))
	require.NoError(t, l.StepRecorded(ctx, c, 1, "a", 2, "n2", 1))
	require.NoError(t, l.NodeDiscovered(ctx, c, 3, "n3"))
	require.NoError(t, l.StepRecorded(ctx, c, 2, "b", 3, "n3", 2))
	require.NoError(t, l.NodeSubtreeComplete(ctx, c, 3))
	require.NoError(t, l.NodeSubtreeComplete(ctx, c, 2))
	require.NoError(t, l.NodeSubtreeComplete(ctx, c, 1))
	require.NoError(t, l.ProcessTerminated(ctx, c))
}

func TestHooksLogger(t *testing.T) {
	var kinds []domain.EventKind
	var steps []*domain.Event
	record := func(_ context.Context, e *domain.Event) { kinds = append(kinds, e.Kind) }

	l := NewHooksLogger[struct{}, string, string](domain.LifecycleHooks{
		OnNodeDiscovered: record,
		OnStepRecorded: func(ctx context.Context, e *domain.Event) {
			record(ctx, e)
			steps = append(steps, e)
		},
		OnProcessTerminated: record,
	})
	drive(t, l)

	assert.Equal(t, []domain.EventKind{
		domain.EventNodeDiscovered,
		domain.EventNodeDiscovered,
		domain.EventStepRecorded,
		domain.EventNodeDiscovered,
		domain.EventStepRecorded,
		domain.EventProcessTerminated,
	}, kinds)
	require.Len(t, steps, 2)
	assert.Equal(t, domain.NodeID(2), steps[1].Origin)
	assert.Equal(t, domain.NodeID(3), steps[1].Target)
	assert.Equal(t, uint32(2), steps[1].Depth)
	assert.False(t, steps[0].Timestamp.IsZero())
}

func TestHooksLogger_NilHooks(t *testing.T) {
	drive(t, NewHooksLogger[struct{}, string, string](domain.LifecycleHooks{}))
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	drive(t, NewSlogLogger[struct{}, string, string](logger, slog.LevelDebug))

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "msg=node_discovered"))
	assert.Equal(t, 2, strings.Count(out, "msg=step_recorded"))
	assert.Equal(t, 3, strings.Count(out, "msg=node_subtree_complete"))
	assert.Contains(t, out, "origin=2 target=3 depth=2 step=b")
	assert.Contains(t, out, "msg=process_terminated")
}

func TestSlogLogger_BelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	drive(t, NewSlogLogger[struct{}, string, string](logger, slog.LevelDebug))
	assert.Empty(t, buf.String())
}

func TestSpanLogger(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	l := NewSpanLogger[struct{}, string, string](tp.Tracer("test"))

	drive(t, l)

	ended := sr.Ended()
	require.Len(t, ended, 4)
	assert.Equal(t, 0, l.OpenSpans())

	// Node spans close in reclamation order, the process span last.
	var process sdktrace.ReadOnlySpan
	nodes := 0
	for _, s := range ended {
		switch s.Name() {
		case "process":
			process = s
		case "node":
			nodes++
		}
	}
	require.NotNil(t, process)
	assert.Equal(t, 3, nodes)
	assert.Equal(t, "process", ended[3].Name())

	for _, s := range ended[:3] {
		assert.Equal(t, process.SpanContext().SpanID(), s.Parent().SpanID())
	}

	// The root node span carries the step to node 2.
	root := ended[2]
	require.Len(t, root.Events(), 1)
	assert.Equal(t, "step", root.Events()[0].Name)
}

func TestSpanLogger_TerminationClosesOpenNodes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	l := NewSpanLogger[struct{}, string, string](tp.Tracer("test"))

	ctx := context.Background()
	c := struct{}{}
	require.NoError(t, l.NodeDiscovered(ctx, c, 1, "root"))
	require.NoError(t, l.NodeDiscovered(ctx, c, 2, "n2"))
	assert.Equal(t, 2, l.OpenSpans())
	assert.Len(t, sr.Started(), 3)

	require.NoError(t, l.ProcessTerminated(ctx, c))
	assert.Equal(t, 0, l.OpenSpans())
	assert.Len(t, sr.Ended(), 3)
}
