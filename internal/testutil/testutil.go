// Package testutil writes small accident-file fixtures for tests.
package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/dsnet/compress/bzip2"
)

// Header is the column set the fixture writers emit. It is a subset of the
// real yearly files but covers every column the loaders read.
var Header = []string{"STATE", "ST_CASE", "MONTH", "YEAR", "LONGITUD", "LATITUDE", "FATALS"}

// AccidentRow is one observation in a fixture file. Coordinates are raw
// cells so tests can exercise sentinels, blanks, and malformed values.
type AccidentRow struct {
	State     int
	Month     int
	Longitude string
	Latitude  string
}

// WriteAccidentFile writes accident_<year>.csv.bz2 under dir and returns its path.
func WriteAccidentFile(t *testing.T, dir string, year int, rows []AccidentRow) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	if err != nil {
		t.Fatalf("create bzip2 writer: %v", err)
	}
	if _, err := w.Write(accidentCSV(t, year, rows)); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close bzip2 writer: %v", err)
	}

	return writeFile(t, dir, fmt.Sprintf("accident_%d.csv.bz2", year), buf.Bytes())
}

// WriteAccidentGzip writes accident_<year>.csv.gz under dir and returns its path.
func WriteAccidentGzip(t *testing.T, dir string, year int, rows []AccidentRow) string {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(accidentCSV(t, year, rows)); err != nil {
		t.Fatalf("compress fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close gzip writer: %v", err)
	}

	return writeFile(t, dir, fmt.Sprintf("accident_%d.csv.gz", year), buf.Bytes())
}

// WriteAccidentPlain writes an uncompressed accident_<year>.csv under dir
// and returns its path.
func WriteAccidentPlain(t *testing.T, dir string, year int, rows []AccidentRow) string {
	t.Helper()
	return writeFile(t, dir, fmt.Sprintf("accident_%d.csv", year), accidentCSV(t, year, rows))
}

func accidentCSV(t *testing.T, year int, rows []AccidentRow) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := [][]string{Header}
	for i, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.State),
			strconv.Itoa(r.State*10000 + i + 1),
			strconv.Itoa(r.Month),
			strconv.Itoa(year),
			r.Longitude,
			r.Latitude,
			"1",
		})
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write fixture csv: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
