package dataset

import (
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/observability"
)

// Table holds the parsed contents of one yearly accident file. Records are
// in file order.
type Table struct {
	Columns []string
	Records []domain.AccidentRecord
}

// Loader reads accident files for a data directory.
type Loader struct {
	resolver *Resolver
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewLoader creates a Loader rooted at dataDir.
func NewLoader(dataDir string, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		resolver: NewResolver(dataDir),
		logger:   logger,
		metrics:  metrics,
	}
}

// ReadFile loads one accident file, decompressing by extension (.bz2 and
// .gz are recognized). A missing file is an error wrapping fs.ErrNotExist
// that names the path.
func (l *Loader) ReadFile(path string) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rd io.Reader = f
	switch {
	case strings.HasSuffix(path, ".bz2"):
		rd = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".gz"):
		gz, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, gzErr)
		}
		defer gz.Close()
		rd = gz
	}

	table, err := parseCSV(rd)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	l.metrics.RecordsLoaded.Add(float64(len(table.Records)))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.logger.Debug("accident file loaded", "path", path, "records", len(table.Records))

	return table, nil
}

// LoadYear loads the accident file for one year. The canonical bzip2 name
// is tried first, then gzip and plain fallbacks, so re-encoded archives
// still load. When no variant exists the error names the canonical path.
func (l *Loader) LoadYear(year int) (*Table, error) {
	canonical := l.resolver.Filename(year)
	table, err := l.ReadFile(canonical)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return table, err
	}

	stem := strings.TrimSuffix(canonical, ".bz2")
	for _, alt := range []string{stem + ".gz", stem} {
		t, altErr := l.ReadFile(alt)
		if altErr == nil {
			return t, nil
		}
		if !errors.Is(altErr, fs.ErrNotExist) {
			return nil, altErr
		}
	}

	return nil, err
}

// parseCSV reads an entire accident table: a header row followed by one
// row per accident. Rows are keyed by header name, so column order does
// not matter, and short rows simply leave the trailing cells absent.
func parseCSV(rd io.Reader) (*Table, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.New("missing header row")
	}

	header := all[0]
	records := make([]domain.AccidentRecord, 0, len(all)-1)
	for _, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[h] = strings.TrimSpace(row[j])
			}
		}
		records = append(records, domain.RecordFromFields(fields))
	}

	return &Table{Columns: header, Records: records}, nil
}
