package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cmpear/fars-analysis/internal/observability"
)

// YearMonths pairs a year with the MONTH cell of every accident observed
// that year, in file order.
type YearMonths struct {
	Year   int
	Months []int
}

// LoadYears loads the month column for each requested year. A year whose
// file cannot be read yields a nil entry and a warning rather than failing
// the whole call, so one bad year does not mask the others. The result has
// one entry per requested year, in request order.
func (l *Loader) LoadYears(years []int) []*YearMonths {
	return collectYearMonths(l.LoadYear, l.logger, l.metrics, years)
}

func collectYearMonths(load func(int) (*Table, error), logger *slog.Logger, metrics *observability.Metrics, years []int) []*YearMonths {
	out := make([]*YearMonths, len(years))
	for i, year := range years {
		table, err := load(year)
		if err != nil {
			logger.Warn("invalid year, skipping", "year", year, "error", err)
			metrics.YearLoadFailures.Inc()
			continue
		}

		months := make([]int, len(table.Records))
		for j, rec := range table.Records {
			months[j] = rec.Month
		}
		out[i] = &YearMonths{Year: year, Months: months}
	}
	return out
}

// AvailableYears scans the data directory and returns every year that has
// an accident file, ascending.
func (l *Loader) AvailableYears() ([]int, error) {
	matches, err := filepath.Glob(filepath.Join(l.resolver.dataDir, "accident_*"))
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	for _, path := range matches {
		if year, ok := yearFromFilename(path); ok {
			seen[year] = true
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// CheckReadiness reports whether the data directory is usable. It must
// contain at least one accident file.
func (l *Loader) CheckReadiness(_ context.Context) error {
	years, err := l.AvailableYears()
	if err != nil {
		return err
	}
	if len(years) == 0 {
		return fmt.Errorf("no accident files under %s", l.resolver.dataDir)
	}
	return nil
}

func yearFromFilename(path string) (int, bool) {
	base := filepath.Base(path)
	rest, ok := strings.CutPrefix(base, "accident_")
	if !ok {
		return 0, false
	}
	rest = strings.TrimSuffix(rest, ".bz2")
	rest = strings.TrimSuffix(rest, ".gz")
	rest = strings.TrimSuffix(rest, ".csv")

	year, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return year, true
}
