package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	loggers "github.com/erwanM974/graph-process-manager-loggers"
	"github.com/erwanM974/graph-process-manager-loggers/internal/config"
	"github.com/erwanM974/graph-process-manager-loggers/internal/logging"
	"github.com/erwanM974/graph-process-manager-loggers/internal/presentation/tui"
	httpAdapter "github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/http"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/metrics"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/observability"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/replay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// progressEvery is how many discovered nodes separate two progress log lines.
const progressEvery = 10000

var replayCmd = &cobra.Command{
	Use:   "replay <trace>",
	Short: "Replay a recorded exploration through the configured loggers",
	Long: `Reads a trace file (YAML, or JSON when the extension is .json), feeds every
event to the configured loggers and prints a summary of the artifacts produced.

With --metrics-addr the artifacts and Prometheus metrics stay available over
HTTP after the replay until the process is interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runReplay(ctx, args[0], cfg, logger, cmd.OutOrStdout(), plain)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().String("out", "", "Output directory for the file sink")
	replayCmd.Flags().String("sink", "", "Artifact sink: file, redis or memory")
	replayCmd.Flags().Bool("dedup", false, "Deduplicate emitted paths across the whole run")
	replayCmd.Flags().String("metrics-addr", "", "Serve /metrics and /artifacts on this address (e.g. :2112)")
	replayCmd.Flags().String("trace-file", "", "Write OpenTelemetry spans (one per node) to this file")
	replayCmd.Flags().Bool("plain", false, "Print the summary as raw markdown")
}

// resolveConfig loads --config and applies the flags explicitly set on top of it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Out, _ = flags.GetString("out")
	}
	if flags.Changed("sink") {
		cfg.Sink, _ = flags.GetString("sink")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("trace-file") {
		cfg.Tracing.File, _ = flags.GetString("trace-file")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("dedup") {
		dedup, _ := flags.GetBool("dedup")
		for i, l := range cfg.Loggers {
			if l.Kind != config.KindStepsTrace {
				continue
			}
			opts := make(map[string]any, len(l.Options)+1)
			for k, v := range l.Options {
				opts[k] = v
			}
			opts["dedup"] = dedup
			cfg.Loggers[i].Options = opts
		}
	}
	return cfg, cfg.Validate()
}

func runReplay(ctx context.Context, tracePath string, cfg *config.Config, logger *slog.Logger, out io.Writer, plain bool) error {
	trace, err := replay.Load(tracePath)
	if err != nil {
		return err
	}

	sink, location := newSink(cfg)
	p, err := buildPipeline(cfg, sink, location, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New[ctxT, nodeT, stepT](reg, cfg.Metrics.Namespace)
	if err != nil {
		return err
	}
	p.dispatcher.Add(m)

	discovered := 0
	p.dispatcher.Add(observability.NewHooksLogger[ctxT, nodeT, stepT](domain.LifecycleHooks{
		OnNodeDiscovered: func(ctx context.Context, e *domain.Event) {
			discovered++
			if discovered%progressEvery == 0 {
				logger.Info("replay progress", "nodes", discovered, "last_node", e.NodeID)
			}
		},
	}))

	if cfg.Tracing.File != "" {
		tp, err := observability.NewStdoutProvider("gpmlog", strings.TrimSpace(loggers.Version), cfg.Tracing.File)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("failed to flush spans", "err", err)
			}
		}()
		p.dispatcher.Add(observability.NewSpanLogger[ctxT, nodeT, stepT](tp.Tracer("gpmlog")))
	}

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		srv = &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: httpAdapter.NewHandler(sink, reg, logger),
		}
		go func() {
			logger.Info("serving metrics and artifacts", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server error", "err", err)
			}
		}()
	}

	logger.Info("replay started", "trace", trace.Name, "events", len(trace.Events), "loggers", p.dispatcher.Len())
	start := time.Now()
	if err := replay.Run(ctx, trace, p.dispatcher); err != nil {
		tui.Failure(os.Stderr, "replay of %s failed", trace.Name)
		shutdown(srv, logger)
		return err
	}

	summary, err := p.summary(ctx, trace)
	if err != nil {
		logger.Warn("failed to list artifacts", "err", err)
	}
	render := tui.NewRenderer()
	if plain {
		render = tui.Plain
	}
	text, err := render(summary.Markdown())
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	tui.Success(out, "replayed %d events in %s", len(trace.Events), time.Since(start).Round(time.Millisecond))

	if srv != nil {
		tui.Success(out, "serving on %s, press Ctrl-C to stop", srv.Addr)
		<-ctx.Done()
		shutdown(srv, logger)
	}
	return nil
}

func shutdown(srv *http.Server, logger *slog.Logger) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown did not complete", "err", err)
		srv.Close()
	}
}

func (p *pipeline) summary(ctx context.Context, trace *replay.Trace) (tui.Summary, error) {
	s := tui.Summary{
		Trace:    trace.Name,
		Events:   len(trace.Events),
		Sink:     p.sinkKind,
		Location: p.location,
	}
	if p.nfa != nil {
		if aut := p.nfa.Result(); aut != nil {
			s.Automaton = &tui.AutomatonSummary{
				Name:         p.nfaName,
				States:       aut.NumStates(),
				Letters:      len(aut.Alphabet),
				Finals:       len(aut.Finals),
				Accessible:   len(aut.Accessible()),
				CoAccessible: len(aut.CoAccessible()),
			}
		}
	}
	if p.tracer != nil {
		s.Paths = &tui.TraceSummary{
			Emitted:      p.tracer.Emitted(),
			OpenFrontier: p.tracer.FrontierWidth(),
		}
	}
	if p.nodes != nil {
		printed := p.nodes.Printed()
		s.Nodes = &printed
	}

	names, err := p.sink.List(ctx)
	s.Artifacts = names
	return s, err
}
