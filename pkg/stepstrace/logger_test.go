package stepstrace_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/memory"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/stepstrace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type procCtx struct{}

type node struct {
	emit bool
}

type trail struct {
	steps []string
}

func (t trail) Key() string {
	return strings.Join(t.steps, ".")
}

type testLogger = stepstrace.Logger[procCtx, node, string, trail]

func testPrinter() stepstrace.Funcs[procCtx, node, string, trail] {
	return stepstrace.Funcs[procCtx, node, string, trail]{
		Initial: func(procCtx, node) trail { return trail{} },
		Extend: func(_ procCtx, o trail, s string) trail {
			steps := make([]string, 0, len(o.steps)+1)
			steps = append(steps, o.steps...)
			return trail{steps: append(steps, s)}
		},
		Emit:   func(_ procCtx, n node, _ uint32) bool { return n.emit },
		Render: func(_ procCtx, o trail) ([]byte, error) { return []byte(o.Key()), nil },
	}
}

func newTracer(sink ports.ArtifactSink, opts ...stepstrace.Option[procCtx, node, string, trail]) *testLogger {
	return stepstrace.New[procCtx, node, string, trail](testPrinter(), sink, opts...)
}

func discover(t *testing.T, l *testLogger, id domain.NodeID) {
	t.Helper()
	require.NoError(t, l.NodeDiscovered(context.Background(), procCtx{}, id, node{}))
}

func step(t *testing.T, l *testLogger, origin domain.NodeID, s string, target domain.NodeID, emit bool) {
	t.Helper()
	require.NoError(t, l.StepRecorded(context.Background(), procCtx{}, origin, s, target, node{emit: emit}, 0))
}

func keys(objects []trail) []string {
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		out = append(out, o.Key())
	}
	return out
}

func frontierKeys(t *testing.T, l *testLogger, id domain.NodeID) []string {
	t.Helper()
	objects, ok := l.Frontier(id)
	require.True(t, ok, "node %d should have a frontier entry", id)
	return keys(objects)
}

func TestTracer_RootSeed(t *testing.T) {
	l := newTracer(memory.NewSink())
	discover(t, l, domain.RootNodeID)

	assert.Equal(t, []string{""}, frontierKeys(t, l, domain.RootNodeID))

	discover(t, l, 2)
	assert.Empty(t, frontierKeys(t, l, 2))
}

func TestTracer_CustomRoot(t *testing.T) {
	l := newTracer(memory.NewSink(), stepstrace.WithRootID[procCtx, node, string, trail](0))
	discover(t, l, 0)
	assert.Equal(t, []string{""}, frontierKeys(t, l, 0))
}

func TestTracer_PathExtension(t *testing.T) {
	l := newTracer(memory.NewSink())
	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "s1", 2, false)
	discover(t, l, 3)
	step(t, l, 2, "s2", 3, false)

	assert.Equal(t, []string{"s1.s2"}, frontierKeys(t, l, 3))
}

func TestTracer_MergesPathsOnSharedTarget(t *testing.T) {
	l := newTracer(memory.NewSink())
	// 1 -a-> 2, 1 -b-> 3, 2 -c-> 4, 3 -c-> 4 : two distinct paths reach 4.
	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "a", 2, false)
	discover(t, l, 3)
	step(t, l, 1, "b", 3, false)
	discover(t, l, 4)
	step(t, l, 2, "c", 4, false)
	step(t, l, 3, "c", 4, false)
	// An identical path merges structurally.
	step(t, l, 2, "c", 4, false)

	assert.Equal(t, []string{"a.c", "b.c"}, frontierKeys(t, l, 4))
}

func TestTracer_Emission(t *testing.T) {
	ctx := context.Background()
	sink := memory.NewSink()
	l := newTracer(sink, stepstrace.WithNaming[procCtx, node, string, trail]("fib_trace", "txt"))

	require.NoError(t, l.Initialize(ctx))
	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "n", 2, true)
	discover(t, l, 3)
	step(t, l, 2, "n", 3, false)
	discover(t, l, 4)
	step(t, l, 3, "n", 4, true)

	assert.Equal(t, uint32(2), l.Emitted())

	names, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fib_trace1.txt", "fib_trace2.txt"}, names)

	data, err := sink.Read(ctx, "fib_trace2.txt")
	require.NoError(t, err)
	assert.Equal(t, "n.n.n", string(data))

	// Objects are propagated whether emitted or not.
	assert.Equal(t, []string{"n.n"}, frontierKeys(t, l, 3))
}

func TestTracer_InitializeResetsSink(t *testing.T) {
	ctx := context.Background()
	sink := memory.NewSink()
	require.NoError(t, sink.Write(ctx, "stale.txt", []byte("old")))

	l := newTracer(sink)
	require.NoError(t, l.Initialize(ctx))

	names, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestTracer_Deduplication(t *testing.T) {
	ctx := context.Background()

	// Two sibling branches produce the same object "a" on different nodes.
	run := func(dedup bool) (*testLogger, *memory.Sink) {
		sink := memory.NewSink()
		l := newTracer(sink, stepstrace.WithDeduplication[procCtx, node, string, trail](dedup))
		require.NoError(t, l.Initialize(ctx))
		discover(t, l, 1)
		discover(t, l, 2)
		step(t, l, 1, "a", 2, true)
		discover(t, l, 3)
		step(t, l, 1, "a", 3, true)
		return l, sink
	}

	t.Run("Enabled", func(t *testing.T) {
		l, sink := run(true)
		assert.Equal(t, uint32(1), l.Emitted())
		names, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"trace1.txt"}, names)

		// The duplicate is also dropped from the frontier of node 3.
		assert.Empty(t, frontierKeys(t, l, 3))
	})

	t.Run("Disabled", func(t *testing.T) {
		l, _ := run(false)
		assert.Equal(t, uint32(2), l.Emitted())
		assert.Equal(t, []string{"a"}, frontierKeys(t, l, 3))
	})
}

func TestTracer_DeduplicationIgnoresUnemitted(t *testing.T) {
	l := newTracer(memory.NewSink(), stepstrace.WithDeduplication[procCtx, node, string, trail](true))
	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "a", 2, false)
	discover(t, l, 3)
	step(t, l, 1, "a", 3, true)

	assert.Equal(t, uint32(1), l.Emitted(), "only emitted objects enter the memo")
}

func TestTracer_Reclamation(t *testing.T) {
	ctx := context.Background()
	l := newTracer(memory.NewSink())

	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "a", 2, false)
	require.NoError(t, l.NodeSubtreeComplete(ctx, procCtx{}, 1))

	_, ok := l.Frontier(1)
	assert.False(t, ok)
	assert.Equal(t, 1, l.FrontierWidth())

	err := l.StepRecorded(ctx, procCtx{}, 1, "b", 2, node{}, 1)
	require.ErrorIs(t, err, domain.ErrNoFrontier)

	var v *domain.ContractViolation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, domain.EventStepRecorded, v.Event)
	assert.Equal(t, domain.NodeID(1), v.NodeID)
}

func TestTracer_FrontierFollowsLiveWidth(t *testing.T) {
	ctx := context.Background()
	l := newTracer(memory.NewSink())

	// Depth-first chain: each node completes once its only child is recorded.
	discover(t, l, 1)
	for id := domain.NodeID(2); id <= 50; id++ {
		discover(t, l, id)
		step(t, l, id-1, "x", id, false)
		require.NoError(t, l.NodeSubtreeComplete(ctx, procCtx{}, id-1))
		assert.Equal(t, 1, l.FrontierWidth())
	}
}

func TestTracer_ContractViolations(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Origin", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		discover(t, l, 2)
		err := l.StepRecorded(ctx, procCtx{}, 1, "a", 2, node{}, 1)
		assert.ErrorIs(t, err, domain.ErrNoFrontier)
	})

	t.Run("Unknown Target", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		discover(t, l, 1)
		err := l.StepRecorded(ctx, procCtx{}, 1, "a", 2, node{}, 1)
		assert.ErrorIs(t, err, domain.ErrNoFrontier)
	})

	t.Run("Completion Without Entry", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		err := l.NodeSubtreeComplete(ctx, procCtx{}, 3)
		assert.ErrorIs(t, err, domain.ErrNoFrontier)
	})

	t.Run("Double Completion", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		discover(t, l, 1)
		require.NoError(t, l.NodeSubtreeComplete(ctx, procCtx{}, 1))
		assert.ErrorIs(t, l.NodeSubtreeComplete(ctx, procCtx{}, 1), domain.ErrNoFrontier)
	})

	t.Run("Rediscovery", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		discover(t, l, 1)
		discover(t, l, 2)
		assert.ErrorIs(t, l.NodeDiscovered(ctx, procCtx{}, 2, node{}), domain.ErrDuplicateNode)
	})

	t.Run("Violation Is Sticky", func(t *testing.T) {
		l := newTracer(memory.NewSink())
		first := l.NodeSubtreeComplete(ctx, procCtx{}, 3)
		require.Error(t, first)
		assert.Equal(t, first, l.NodeDiscovered(ctx, procCtx{}, 1, node{}))
		assert.Equal(t, first, l.ProcessTerminated(ctx, procCtx{}))
		assert.Equal(t, first, l.Err())
	})
}

type failingSink struct {
	*memory.Sink
	failOn string
}

func (s failingSink) Write(ctx context.Context, name string, data []byte) error {
	if name == s.failOn {
		return errors.New("disk full")
	}
	return s.Sink.Write(ctx, name, data)
}

func TestTracer_WriteFailureIsLocal(t *testing.T) {
	ctx := context.Background()
	sink := failingSink{Sink: memory.NewSink(), failOn: "trace1.txt"}
	l := newTracer(sink)

	discover(t, l, 1)
	discover(t, l, 2)
	step(t, l, 1, "a", 2, true)
	discover(t, l, 3)
	step(t, l, 2, "b", 3, true)
	require.NoError(t, l.ProcessTerminated(ctx, procCtx{}))

	assert.NoError(t, l.Err())
	assert.Equal(t, uint32(2), l.Emitted())

	names, err := sink.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"trace2.txt"}, names)
	assert.Equal(t, []string{"a.b"}, frontierKeys(t, l, 3))
}

func TestTracer_ArtifactName(t *testing.T) {
	l := newTracer(memory.NewSink(), stepstrace.WithNaming[procCtx, node, string, trail]("run_", "json"))
	assert.Equal(t, "run_12.json", l.ArtifactName(12))
}
