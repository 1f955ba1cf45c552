// Package chart renders state accident maps with go-chart.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/cmpear/fars-analysis/internal/mapping"
)

// Format selects the image encoding for rendered maps.
type Format string

// Supported encodings.
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat converts a format argument to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unknown map format %q", s)
}

// ContentType returns the MIME type for the encoding.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Renderer draws a state outline with one dot per accident. It implements
// the renderer contract of the mapping package.
type Renderer struct {
	width  int
	height int
	format Format
}

// NewRenderer creates a Renderer producing width-by-height images.
func NewRenderer(width, height int, format Format) *Renderer {
	return &Renderer{
		width:  width,
		height: height,
		format: format,
	}
}

// Format returns the encoding name, png or svg.
func (r *Renderer) Format() string {
	return string(r.format)
}

// Render draws the plot. The axis ranges cover the state outline and every
// point with a small margin, so a single accident or a zero-width spread
// still renders instead of tripping the chart library's range checks.
func (r *Renderer) Render(w io.Writer, plot *mapping.StatePlot) error {
	outline := plot.State.Bound
	if outline == (orb.Bound{}) {
		outline = plot.Bounds.Pad(0.5)
	}
	view := outline.Union(plot.Bounds)

	ch := gochart.Chart{
		Title:      fmt.Sprintf("%s accidents, %d", plot.State.Name, plot.Year),
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 16, Left: 12, Right: 12, Bottom: 12}},
		XAxis: gochart.XAxis{
			Name:  "longitude",
			Range: paddedRange(view.Min[0], view.Max[0]),
		},
		YAxis: gochart.YAxis{
			Name:  "latitude",
			Range: paddedRange(view.Min[1], view.Max[1]),
		},
		Series: []gochart.Series{
			outlineSeries(outline),
			pointSeries(plot.Points),
		},
	}

	if r.format == SVG {
		return ch.Render(gochart.SVG, w)
	}
	return ch.Render(gochart.PNG, w)
}

// paddedRange widens [min, max] by 5% of the span, with a floor of a tenth
// of a degree so the range never collapses to zero width.
func paddedRange(min, max float64) *gochart.ContinuousRange {
	pad := (max - min) * 0.05
	if pad < 0.1 {
		pad = 0.1
	}
	return &gochart.ContinuousRange{Min: min - pad, Max: max + pad}
}

// outlineSeries traces the state bounding box as a closed gray ring.
func outlineSeries(b orb.Bound) gochart.ContinuousSeries {
	return gochart.ContinuousSeries{
		Name:    "outline",
		XValues: []float64{b.Min[0], b.Max[0], b.Max[0], b.Min[0], b.Min[0]},
		YValues: []float64{b.Min[1], b.Min[1], b.Max[1], b.Max[1], b.Min[1]},
		Style: gochart.Style{
			StrokeWidth: 1.0,
			StrokeColor: gochart.ColorAlternateGray,
		},
	}
}

// pointSeries renders accidents as dots only, no connecting line.
func pointSeries(points []orb.Point) gochart.ContinuousSeries {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p[0]
		ys[i] = p[1]
	}
	return gochart.ContinuousSeries{
		Name:    "accidents",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    3,
			DotColor:    gochart.ColorBlue,
		},
	}
}
