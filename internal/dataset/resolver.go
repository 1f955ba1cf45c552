// Package dataset reads yearly accident files from a data directory.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// FilePattern names the accident file for a year, matching what the FARS
// archives publish. Files sit flat in the data directory, one per year.
const FilePattern = "accident_%d.csv.bz2"

// ParseYear coerces a year argument to an integer the same way state codes
// parse: plain integers pass through, decimals truncate toward zero,
// anything else is an error naming the input.
func ParseYear(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f), nil
	}
	return 0, fmt.Errorf("invalid year %q", v)
}

// ParseYears parses a year list argument: comma-separated years and
// inclusive A-B ranges, such as "2013,2015" or "2013-2015".
func ParseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(part, "-"); ok && lo != "" {
			start, err := ParseYear(lo)
			if err != nil {
				return nil, err
			}
			end, err := ParseYear(hi)
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid year range %q", part)
			}
			for y := start; y <= end; y++ {
				years = append(years, y)
			}
			continue
		}

		year, err := ParseYear(part)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}

	if len(years) == 0 {
		return nil, errors.New("no years given")
	}
	return years, nil
}

// Resolver maps years to the files holding their accident records.
type Resolver struct {
	dataDir string
}

// NewResolver creates a Resolver rooted at dataDir.
func NewResolver(dataDir string) *Resolver {
	return &Resolver{dataDir: dataDir}
}

// Filename returns the path of the accident file for year. Any integer
// formats; whether the file exists is the reader's concern.
func (r *Resolver) Filename(year int) string {
	return filepath.Join(r.dataDir, fmt.Sprintf(FilePattern, year))
}
