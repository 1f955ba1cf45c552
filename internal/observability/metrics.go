package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the analysis service.
type Metrics struct {
	RecordsLoaded    prometheus.Counter
	YearLoadFailures prometheus.Counter
	LoadDuration     prometheus.Histogram

	// Analysis metrics.
	SummariesGenerated prometheus.Counter
	MapsRendered       *prometheus.CounterVec // labels: format={png,svg}
	EmptyPlots         prometheus.Counter
	RenderDuration     prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "records_loaded_total",
			Help:      "Total accident records parsed from yearly files.",
		}),
		YearLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "year_load_failures_total",
			Help:      "Years skipped because their accident file was missing or unreadable.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "load_duration_seconds",
			Help:      "Duration of reading and parsing one yearly accident file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SummariesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "summaries_generated_total",
			Help:      "Total monthly summaries generated.",
		}),
		MapsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "maps_rendered_total",
			Help:      "State maps rendered by output format.",
		}, []string{"format"}),
		EmptyPlots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "empty_plots_total",
			Help:      "Plot requests matching no accidents or no usable coordinates.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "render_duration_seconds",
			Help:      "Duration of rendering one state map.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.RecordsLoaded,
		m.YearLoadFailures,
		m.LoadDuration,
		m.SummariesGenerated,
		m.MapsRendered,
		m.EmptyPlots,
		m.RenderDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "records_loaded_total"}),
		YearLoadFailures:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "year_load_failures_total"}),
		LoadDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars", Name: "load_duration_seconds"}),
		SummariesGenerated: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "summaries_generated_total"}),
		MapsRendered:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fars", Name: "maps_rendered_total"}, []string{"format"}),
		EmptyPlots:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars", Name: "empty_plots_total"}),
		RenderDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars", Name: "render_duration_seconds"}),
	}
}
