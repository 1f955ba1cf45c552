// Package mapping prepares and draws per-state accident maps.
package mapping

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/paulmach/orb"

	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/observability"
)

// ErrUnknownState reports a state code absent from a year's accident file.
// The accident data itself is the authority, so a code the file never
// mentions is invalid even when a state with that number exists.
var ErrUnknownState = errors.New("invalid state number")

// YearLoader loads the accident table for one year.
type YearLoader interface {
	LoadYear(year int) (*dataset.Table, error)
}

// Renderer draws a prepared plot to a writer.
type Renderer interface {
	Render(w io.Writer, plot *StatePlot) error
	Format() string
}

// StatePlot holds everything needed to draw one state's accidents for a
// year. Records counts the whole state subset; Points carries only the
// rows whose coordinates survived sanitization.
type StatePlot struct {
	State       domain.State
	Year        int
	Records     int
	Points      []orb.Point
	Bounds      orb.Bound
	GeneratedAt time.Time
}

// Mapper builds state plots from yearly accident files.
type Mapper struct {
	loader   YearLoader
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewMapper creates a Mapper over the given loader and renderer.
func NewMapper(loader YearLoader, renderer Renderer, logger *slog.Logger, metrics *observability.Metrics) *Mapper {
	return &Mapper{
		loader:   loader,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}
}

// Plot loads one year and prepares the scatter plot for one state. The
// state code must appear in that year's STATE column. A nil plot with a
// nil error means there is nothing to draw: either the subset was empty
// or no row had usable coordinates.
func (m *Mapper) Plot(stateCode, year int) (*StatePlot, error) {
	table, err := m.loader.LoadYear(year)
	if err != nil {
		return nil, err
	}

	if !containsState(table.Records, stateCode) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, stateCode)
	}

	subset := filterState(table.Records, stateCode)
	if len(subset) == 0 {
		m.logger.Info("no accidents to plot", "state", stateCode, "year", year)
		m.metrics.EmptyPlots.Inc()
		return nil, nil
	}

	points := plottablePoints(subset)
	if len(points) == 0 {
		m.logger.Info("no plottable coordinates", "state", stateCode, "year", year, "records", len(subset))
		m.metrics.EmptyPlots.Inc()
		return nil, nil
	}

	bounds := orb.Bound{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bounds = bounds.Extend(p)
	}

	return &StatePlot{
		State:       domain.StateOrFallback(stateCode),
		Year:        year,
		Records:     len(subset),
		Points:      points,
		Bounds:      bounds,
		GeneratedAt: domain.Now(),
	}, nil
}

// RenderPlot draws a prepared plot. A nil plot is a no-op so the
// nothing-to-draw result of Plot flows through without a special case.
func (m *Mapper) RenderPlot(w io.Writer, plot *StatePlot) error {
	if plot == nil {
		return nil
	}

	start := time.Now()
	if err := m.renderer.Render(w, plot); err != nil {
		return fmt.Errorf("render state map: %w", err)
	}

	m.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	m.metrics.MapsRendered.WithLabelValues(m.renderer.Format()).Inc()
	m.logger.Debug("state map rendered",
		"state", plot.State.Code,
		"year", plot.Year,
		"points", len(plot.Points),
		"format", m.renderer.Format(),
	)
	return nil
}

// Format returns the encoding the configured renderer produces.
func (m *Mapper) Format() string {
	return m.renderer.Format()
}

// Render loads, prepares, and draws one state map in a single call.
func (m *Mapper) Render(w io.Writer, stateCode, year int) error {
	plot, err := m.Plot(stateCode, year)
	if err != nil {
		return err
	}
	return m.RenderPlot(w, plot)
}

func containsState(records []domain.AccidentRecord, stateCode int) bool {
	for _, rec := range records {
		if rec.State == stateCode {
			return true
		}
	}
	return false
}

func filterState(records []domain.AccidentRecord, stateCode int) []domain.AccidentRecord {
	var subset []domain.AccidentRecord
	for _, rec := range records {
		if rec.State == stateCode {
			subset = append(subset, rec)
		}
	}
	return subset
}

// plottablePoints sanitizes the subset and keeps one point per row whose
// coordinates are both present. Sanitized rows stay in the subset count;
// they only drop out of the drawn points.
func plottablePoints(subset []domain.AccidentRecord) []orb.Point {
	points := make([]orb.Point, 0, len(subset))
	for _, rec := range subset {
		rec = domain.SanitizeCoordinates(rec)
		if rec.LongitudeMissing() || rec.LatitudeMissing() {
			continue
		}
		points = append(points, orb.Point{rec.Longitude, rec.Latitude})
	}
	return points
}
