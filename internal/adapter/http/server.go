package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cmpear/fars-analysis/internal/analysis"
	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/mapping"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SummaryService produces month-by-year accident counts.
type SummaryService interface {
	Summarize(years []int) (*analysis.Summary, error)
}

// MapService prepares and renders state accident maps.
type MapService interface {
	Plot(stateCode, year int) (*mapping.StatePlot, error)
	RenderPlot(w io.Writer, plot *mapping.StatePlot) error
	Format() string
}

// Server exposes the analysis API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	summaries  SummaryService
	maps       MapService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the summary, map, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, ready ReadinessChecker, summaries SummaryService, maps MapService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		summaries: summaries,
		maps:      maps,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/states/{code}/map", s.handleStateMap)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleSummary serves GET /v1/summary?years=2013,2014. The years
// parameter accepts comma-separated values and may repeat.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	years, err := parseYearsParam(r.URL.Query()["years"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	summary, err := s.summaries.Summarize(years)
	if err != nil {
		s.logger.Error("summary failed", "years", years, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleStateMap serves GET /v1/states/{code}/map?year=2013 with a rendered
// image. A year the state never appears in is a 404; a state subset with
// nothing to draw is a 204.
func (s *Server) handleStateMap(w http.ResponseWriter, r *http.Request) {
	code, err := domain.ParseStateCode(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	yearParam := r.URL.Query().Get("year")
	if yearParam == "" {
		writeError(w, http.StatusBadRequest, errors.New("year query parameter is required"))
		return
	}
	year, err := dataset.ParseYear(yearParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plot, err := s.maps.Plot(code, year)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, mapping.ErrUnknownState):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.logger.Error("state map failed", "state", code, "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if plot == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := s.maps.RenderPlot(&buf, plot); err != nil {
		s.logger.Error("state map render failed", "state", code, "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("map rendering failed"))
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(s.maps.Format()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client gone mid-stream is not actionable
}

func parseYearsParam(values []string) ([]int, error) {
	var years []int
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			year, err := dataset.ParseYear(part)
			if err != nil {
				return nil, err
			}
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return nil, errors.New("years query parameter is required")
	}
	return years, nil
}

func contentTypeFor(format string) string {
	if format == "svg" {
		return "image/svg+xml"
	}
	return "image/png"
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
