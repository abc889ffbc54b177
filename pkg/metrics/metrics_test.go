package metrics_test

import (
	"context"
	"strings"
	"testing"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsLogger(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	l, err := metrics.New[struct{}, string, string](reg, "gpmlog")
	require.NoError(t, err)

	require.NoError(t, l.Initialize(ctx))
	require.NoError(t, l.NodeDiscovered(ctx, struct{}{}, 1, "root"))
	require.NoError(t, l.NodeDiscovered(ctx, struct{}{}, 2, "child"))
	require.NoError(t, l.StepRecorded(ctx, struct{}{}, 1, "a", 2, "child", 1))
	require.NoError(t, l.NodeSubtreeComplete(ctx, struct{}{}, 1))
	require.NoError(t, l.ProcessTerminated(ctx, struct{}{}))

	expected := `
# HELP gpmlog_nodes_discovered_total Total number of nodes discovered by the exploration
# TYPE gpmlog_nodes_discovered_total counter
gpmlog_nodes_discovered_total 2
# HELP gpmlog_open_nodes Nodes discovered and not yet reported complete
# TYPE gpmlog_open_nodes gauge
gpmlog_open_nodes 1
# HELP gpmlog_steps_recorded_total Total number of steps recorded by the exploration
# TYPE gpmlog_steps_recorded_total counter
gpmlog_steps_recorded_total 1
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"gpmlog_nodes_discovered_total", "gpmlog_open_nodes", "gpmlog_steps_recorded_total")
	assert.NoError(t, err)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestMetricsLogger_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := metrics.New[struct{}, string, string](reg, "gpmlog")
	require.NoError(t, err)

	_, err = metrics.New[struct{}, string, string](reg, "gpmlog")
	assert.Error(t, err)
}
