package mapping_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/mapping"
	"github.com/cmpear/fars-analysis/internal/observability"
)

// --- mocks ---

type mockYearLoader struct {
	table *dataset.Table
	err   error
}

func (m *mockYearLoader) LoadYear(int) (*dataset.Table, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.table, nil
}

type mockRenderer struct {
	rendered []*mapping.StatePlot
	err      error
}

func (m *mockRenderer) Render(w io.Writer, plot *mapping.StatePlot) error {
	if m.err != nil {
		return m.err
	}
	m.rendered = append(m.rendered, plot)
	_, _ = w.Write([]byte("img"))
	return nil
}

func (m *mockRenderer) Format() string { return "png" }

func rec(state int, lon, lat float64) domain.AccidentRecord {
	return domain.AccidentRecord{State: state, Month: 1, Longitude: lon, Latitude: lat}
}

func newMapper(loader *mockYearLoader, renderer *mockRenderer) *mapping.Mapper {
	return mapping.NewMapper(loader, renderer, slog.Default(), observability.NewMetricsForTesting())
}

// --- tests ---

func TestPlot(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(1, -86.8, 33.5),
		rec(1, 999.9999, 99.9999),
		rec(48, -97.7, 30.3),
	}}}
	m := newMapper(loader, &mockRenderer{})

	plot, err := m.Plot(1, 2013)
	require.NoError(t, err)
	require.NotNil(t, plot)

	assert.Equal(t, "Alabama", plot.State.Name)
	assert.Equal(t, 2013, plot.Year)
	assert.Equal(t, 2, plot.Records, "sanitized rows stay in the subset count")
	assert.Equal(t, []orb.Point{{-86.8, 33.5}}, plot.Points, "sentinel rows drop out of the points")
	assert.Equal(t, orb.Bound{Min: orb.Point{-86.8, 33.5}, Max: orb.Point{-86.8, 33.5}}, plot.Bounds)
	assert.Equal(t, fakeClock.Now(), plot.GeneratedAt)
}

func TestPlot_BoundsCoverAllPoints(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(48, -106.5, 31.8),
		rec(48, -94.0, 29.8),
		rec(48, -97.7, 36.2),
	}}}
	m := newMapper(loader, &mockRenderer{})

	plot, err := m.Plot(48, 2014)
	require.NoError(t, err)
	require.NotNil(t, plot)

	assert.Equal(t, orb.Point{-106.5, 29.8}, plot.Bounds.Min)
	assert.Equal(t, orb.Point{-94.0, 36.2}, plot.Bounds.Max)
}

func TestPlot_UnknownState(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(1, -86.8, 33.5),
	}}}
	m := newMapper(loader, &mockRenderer{})

	_, err := m.Plot(99, 2013)
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrUnknownState)
	assert.Contains(t, err.Error(), "99", "error names the bad code")
}

func TestPlot_CodeOnlyValidWhenPresentInData(t *testing.T) {
	// Vermont exists, but this year's file has no Vermont rows.
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(1, -86.8, 33.5),
	}}}
	m := newMapper(loader, &mockRenderer{})

	_, err := m.Plot(50, 2013)
	assert.ErrorIs(t, err, mapping.ErrUnknownState)
}

func TestPlot_LoadErrorPropagates(t *testing.T) {
	loader := &mockYearLoader{err: fs.ErrNotExist}
	m := newMapper(loader, &mockRenderer{})

	_, err := m.Plot(1, 2013)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPlot_NoPlottableCoordinates(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(1, 999.9999, 33.5),
		rec(1, -86.8, 99.9999),
	}}}
	m := newMapper(loader, &mockRenderer{})

	plot, err := m.Plot(1, 2013)
	require.NoError(t, err)
	assert.Nil(t, plot)
}

func TestRenderPlot_NilPlotIsNoOp(t *testing.T) {
	renderer := &mockRenderer{}
	m := newMapper(&mockYearLoader{}, renderer)

	var buf bytes.Buffer
	require.NoError(t, m.RenderPlot(&buf, nil))
	require.NoError(t, m.RenderPlot(&buf, nil))

	assert.Empty(t, renderer.rendered)
	assert.Zero(t, buf.Len())
}

func TestRender(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(6, -120.5, 38.2),
	}}}
	renderer := &mockRenderer{}
	m := newMapper(loader, renderer)

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf, 6, 2015))

	require.Len(t, renderer.rendered, 1)
	assert.Equal(t, "California", renderer.rendered[0].State.Name)
	assert.NotZero(t, buf.Len())
}

func TestRender_NothingToDraw(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(6, 999.9999, 99.9999),
	}}}
	renderer := &mockRenderer{}
	m := newMapper(loader, renderer)

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf, 6, 2015))
	require.NoError(t, m.Render(&buf, 6, 2015))

	assert.Empty(t, renderer.rendered)
	assert.Zero(t, buf.Len())
}

func TestRenderPlot_RendererError(t *testing.T) {
	loader := &mockYearLoader{table: &dataset.Table{Records: []domain.AccidentRecord{
		rec(6, -120.5, 38.2),
	}}}
	m := newMapper(loader, &mockRenderer{err: errors.New("encode failed")})

	plot, err := m.Plot(6, 2015)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = m.RenderPlot(&buf, plot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render state map")
}
