// Package analysis aggregates accident observations into reports.
package analysis

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/observability"
)

// YearSource provides the month column of each requested year. Years that
// cannot be loaded come back as nil entries.
type YearSource interface {
	LoadYears(years []int) []*dataset.YearMonths
}

// Summary is a month-by-year accident count pivot. Years holds the column
// order for every Counts slice; a nil cell means the month and year
// combination never appeared in the data, which is distinct from a zero.
type Summary struct {
	Years       []int         `json:"years"`
	Rows        []MonthCounts `json:"rows"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// MonthCounts is one summary row: a month and its count per year column.
type MonthCounts struct {
	Month  int    `json:"month"`
	Counts []*int `json:"counts"`
}

// Count returns the number of accidents for month in year. ok is false
// when the combination is absent from the summary.
func (s *Summary) Count(month, year int) (int, bool) {
	col := -1
	for i, y := range s.Years {
		if y == year {
			col = i
			break
		}
	}
	if col < 0 {
		return 0, false
	}

	for _, row := range s.Rows {
		if row.Month != month {
			continue
		}
		if c := row.Counts[col]; c != nil {
			return *c, true
		}
		return 0, false
	}
	return 0, false
}

// Total returns the number of accidents across all cells.
func (s *Summary) Total() int {
	n := 0
	for _, row := range s.Rows {
		for _, c := range row.Counts {
			if c != nil {
				n += *c
			}
		}
	}
	return n
}

// Summarizer counts accidents by month and year.
type Summarizer struct {
	source  YearSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSummarizer creates a Summarizer over the given source.
func NewSummarizer(source YearSource, logger *slog.Logger, metrics *observability.Metrics) *Summarizer {
	return &Summarizer{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// Summarize builds the monthly accident counts for the requested years.
// A year only becomes a column when at least one of its observations
// loaded; failed and empty years are left out entirely. Rows cover the
// observed month values in ascending order.
func (s *Summarizer) Summarize(years []int) (*Summary, error) {
	if len(years) == 0 {
		return nil, errors.New("no years requested")
	}

	loaded := s.source.LoadYears(years)

	counts := make(map[int]map[int]int) // month -> year -> n
	var cols []int
	seen := make(map[int]bool)
	for _, ym := range loaded {
		if ym == nil || len(ym.Months) == 0 {
			continue
		}
		if !seen[ym.Year] {
			seen[ym.Year] = true
			cols = append(cols, ym.Year)
		}
		for _, m := range ym.Months {
			if counts[m] == nil {
				counts[m] = make(map[int]int)
			}
			counts[m][ym.Year]++
		}
	}
	sort.Ints(cols)

	months := make([]int, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Ints(months)

	rows := make([]MonthCounts, 0, len(months))
	for _, m := range months {
		cells := make([]*int, len(cols))
		for i, y := range cols {
			if n, ok := counts[m][y]; ok {
				v := n
				cells[i] = &v
			}
		}
		rows = append(rows, MonthCounts{Month: m, Counts: cells})
	}

	summary := &Summary{Years: cols, Rows: rows, GeneratedAt: domain.Now()}

	s.metrics.SummariesGenerated.Inc()
	s.logger.Debug("summary generated", "years", len(cols), "months", len(rows), "accidents", summary.Total())

	return summary, nil
}
