// Package metrics exposes the progress of an exploration as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Logger is a ports.ProcessLogger recording counters about the event stream.
// It holds no per-node state, so it never reports contract violations.
type Logger[C, N, S any] struct {
	nodes      prometheus.Counter
	steps      prometheus.Counter
	completed  prometheus.Counter
	open       prometheus.Gauge
	depth      prometheus.Histogram
	terminated prometheus.Counter
}

// New creates the metrics and registers them with reg.
// namespace prefixes every metric name (e.g. "gpmlog_nodes_discovered_total").
func New[C, N, S any](reg prometheus.Registerer, namespace string) (*Logger[C, N, S], error) {
	l := &Logger[C, N, S]{
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_discovered_total",
			Help:      "Total number of nodes discovered by the exploration",
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_recorded_total",
			Help:      "Total number of steps recorded by the exploration",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subtrees_completed_total",
			Help:      "Total number of nodes whose subtree was fully explored",
		}),
		open: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_nodes",
			Help:      "Nodes discovered and not yet reported complete",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_target_depth",
			Help:      "Depth of the target node of recorded steps",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		terminated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processes_terminated_total",
			Help:      "Total number of explorations that reached termination",
		}),
	}

	for _, c := range []prometheus.Collector{l.nodes, l.steps, l.completed, l.open, l.depth, l.terminated} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return l, nil
}

func (l *Logger[C, N, S]) Initialize(ctx context.Context) error {
	l.open.Set(0)
	return nil
}

func (l *Logger[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	l.nodes.Inc()
	l.open.Inc()
	return nil
}

func (l *Logger[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	l.steps.Inc()
	l.depth.Observe(float64(depth))
	return nil
}

func (l *Logger[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	l.completed.Inc()
	l.open.Dec()
	return nil
}

func (l *Logger[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	l.terminated.Inc()
	return nil
}
