package main

import (
	"fmt"
	"log/slog"
	"strings"

	loggers "github.com/erwanM974/graph-process-manager-loggers"
	"github.com/erwanM974/graph-process-manager-loggers/internal/config"
	"github.com/erwanM974/graph-process-manager-loggers/internal/logging"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/file"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/memory"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/redis"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/nfait"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/nodesprint"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/observability"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/replay"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/stepstrace"
)

type (
	ctxT  = replay.Context
	nodeT = replay.Node
	stepT = replay.Step
)

// pipeline is the set of loggers assembled from a configuration. The typed
// fields keep a handle on the first logger of each kind for the summary.
type pipeline struct {
	dispatcher *loggers.Dispatcher[ctxT, nodeT, stepT]
	sink       ports.ArtifactSink
	sinkKind   string
	location   string
	nfa        *nfait.Logger[ctxT, nodeT, stepT, string]
	nfaName    string
	tracer     *stepstrace.Logger[ctxT, nodeT, stepT, replay.Path]
	nodes      *nodesprint.Logger[ctxT, nodeT, stepT]
}

// newSink builds the artifact sink selected by cfg.
func newSink(cfg *config.Config) (ports.ArtifactSink, string) {
	switch cfg.Sink {
	case config.SinkRedis:
		var opts []redis.Option
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return s, cfg.Redis.Addr + " run " + s.RunID()
	case config.SinkMemory:
		return memory.NewSink(), "memory"
	default:
		s := file.New(cfg.Out)
		return s, s.BasePath()
	}
}

// buildPipeline creates one logger per configuration entry, in order, all
// sharing sink.
func buildPipeline(cfg *config.Config, sink ports.ArtifactSink, location string, logger *slog.Logger) (*pipeline, error) {
	p := &pipeline{sink: sink, sinkKind: cfg.Sink, location: location}
	p.dispatcher = loggers.New[ctxT, nodeT, stepT](loggers.WithLogger[ctxT, nodeT, stepT](logger))

	for i, lc := range cfg.Loggers {
		switch lc.Kind {
		case config.KindNFAIT:
			opts, err := lc.NFAIT()
			if err != nil {
				return nil, fmt.Errorf("logger %d: %w", i, err)
			}
			l := nfait.New[ctxT, nodeT, stepT, string](replay.AutomatonBuilder(),
				nfait.WithLogger[ctxT, nodeT, stepT, string](logger.With("logger", opts.Name)),
				nfait.WithSink[ctxT, nodeT, stepT, string](sink, opts.Name),
				nfait.WithMermaid[ctxT, nodeT, stepT, string](opts.Mermaid),
			)
			if p.nfa == nil {
				p.nfa, p.nfaName = l, opts.Name
			}
			p.dispatcher.Add(l)

		case config.KindStepsTrace:
			opts, err := lc.StepsTrace()
			if err != nil {
				return nil, fmt.Errorf("logger %d: %w", i, err)
			}
			l := stepstrace.New[ctxT, nodeT, stepT, replay.Path](replay.PathPrinter(), sink,
				stepstrace.WithLogger[ctxT, nodeT, stepT, replay.Path](logger.With("logger", "stepstrace")),
				stepstrace.WithDeduplication[ctxT, nodeT, stepT, replay.Path](opts.Dedup),
				stepstrace.WithNaming[ctxT, nodeT, stepT, replay.Path](opts.Prefix, opts.Extension),
			)
			if p.tracer == nil {
				p.tracer = l
			}
			p.dispatcher.Add(l)

		case config.KindNodesPrint:
			opts, err := lc.NodesPrint()
			if err != nil {
				return nil, fmt.Errorf("logger %d: %w", i, err)
			}
			l := nodesprint.New[ctxT, nodeT, stepT](replay.NodePrinter{}, sink,
				nodesprint.WithLogger[ctxT, nodeT, stepT](logger.With("logger", "nodesprint")),
				nodesprint.WithNaming[ctxT, nodeT, stepT](opts.Prefix, opts.Extension),
			)
			if p.nodes == nil {
				p.nodes = l
			}
			p.dispatcher.Add(l)

		case config.KindSlog:
			opts, err := lc.Slog()
			if err != nil {
				return nil, fmt.Errorf("logger %d: %w", i, err)
			}
			level, err := logging.ParseLevel(strings.ToLower(opts.Level))
			if err != nil {
				return nil, fmt.Errorf("logger %d: %w", i, err)
			}
			p.dispatcher.Add(observability.NewSlogLogger[ctxT, nodeT, stepT](logger.With("logger", "events"), level))

		default:
			return nil, fmt.Errorf("logger %d: unknown kind %q", i, lc.Kind)
		}
	}
	return p, nil
}
