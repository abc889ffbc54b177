package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	loggers "github.com/erwanM974/graph-process-manager-loggers"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the artifacts of a run and the process metrics over HTTP.
type Server struct {
	Sink     ports.ArtifactSink
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewHandler creates the HTTP handler:
//
//	GET /health             liveness
//	GET /info               application and version
//	GET /metrics            Prometheus exposition of gatherer
//	GET /artifacts          JSON list of artifact names
//	GET /artifacts/{name}   raw artifact content
//
// A nil sink disables the artifact routes; a nil gatherer disables /metrics.
func NewHandler(sink ports.ArtifactSink, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{Sink: sink, Gatherer: gatherer, Logger: logger}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	if sink != nil {
		r.Get("/artifacts", server.ListArtifacts)
		r.Get("/artifacts/{name}", server.GetArtifact)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{
		"app":     "gpmlog",
		"version": strings.TrimSpace(loggers.Version),
	})
}

// ListArtifacts handles the GET /artifacts request.
func (s *Server) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	names, err := s.Sink.List(r.Context())
	if err != nil {
		http.Error(w, "failed to list artifacts", http.StatusInternalServerError)
		s.Logger.Error("ListArtifacts failed", "err", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, s.Logger, names)
}

// GetArtifact handles the GET /artifacts/{name} request.
func (s *Server) GetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.Sink.Read(r.Context(), name)
	if errors.Is(err, domain.ErrArtifactNotFound) {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to read artifact", http.StatusInternalServerError)
		s.Logger.Error("GetArtifact failed", "name", name, "err", err)
		return
	}
	w.Header().Set("Content-Type", contentType(name))
	w.Write(data)
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
