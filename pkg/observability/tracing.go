package observability

import (
	"context"
	"io"
	"os"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// NewStdoutProvider builds a tracer provider exporting spans as JSON to the given file,
// or to os.Stdout if outputFile is empty. Callers must Shutdown the provider to flush.
func NewStdoutProvider(serviceName, serviceVersion, outputFile string) (*sdktrace.TracerProvider, error) {
	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, err
		}
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	), nil
}

// SpanLogger turns an exploration into a trace: one "process" span for the
// whole run and one "node" span per discovered node, open until the node's
// subtree is complete. Steps are recorded as span events on their origin node.
type SpanLogger[C, N, S any] struct {
	tracer  trace.Tracer
	process trace.Span
	procCtx context.Context
	nodes   map[domain.NodeID]trace.Span
}

// NewSpanLogger creates a SpanLogger using tracer.
func NewSpanLogger[C, N, S any](tracer trace.Tracer) *SpanLogger[C, N, S] {
	return &SpanLogger[C, N, S]{
		tracer: tracer,
		nodes:  make(map[domain.NodeID]trace.Span),
	}
}

func (s *SpanLogger[C, N, S]) Initialize(ctx context.Context) error {
	s.procCtx, s.process = s.tracer.Start(ctx, "process")
	return nil
}

func (s *SpanLogger[C, N, S]) NodeDiscovered(ctx context.Context, c C, id domain.NodeID, node N) error {
	if s.process == nil {
		_ = s.Initialize(ctx)
	}
	_, span := s.tracer.Start(s.procCtx, "node",
		trace.WithAttributes(attribute.Int64("node.id", int64(id))),
	)
	s.nodes[id] = span
	return nil
}

func (s *SpanLogger[C, N, S]) StepRecorded(ctx context.Context, c C, origin domain.NodeID, step S, target domain.NodeID, targetNode N, depth uint32) error {
	span, ok := s.nodes[origin]
	if !ok {
		return nil
	}
	span.AddEvent("step", trace.WithAttributes(
		attribute.Int64("step.target", int64(target)),
		attribute.Int64("step.depth", int64(depth)),
	))
	return nil
}

func (s *SpanLogger[C, N, S]) NodeSubtreeComplete(ctx context.Context, c C, id domain.NodeID) error {
	if span, ok := s.nodes[id]; ok {
		span.SetStatus(codes.Ok, "")
		span.End()
		delete(s.nodes, id)
	}
	return nil
}

// ProcessTerminated ends the nodes still open, marked unset, then the process span.
func (s *SpanLogger[C, N, S]) ProcessTerminated(ctx context.Context, c C) error {
	for id, span := range s.nodes {
		span.End()
		delete(s.nodes, id)
	}
	if s.process != nil {
		s.process.SetStatus(codes.Ok, "")
		s.process.End()
		s.process = nil
	}
	return nil
}

// OpenSpans returns how many node spans are still running.
func (s *SpanLogger[C, N, S]) OpenSpans() int {
	return len(s.nodes)
}
