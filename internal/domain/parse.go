package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RecordFromFields builds an AccidentRecord from one CSV row keyed by header
// name. Parsing is lenient: a missing or malformed STATE/MONTH cell becomes
// 0, a missing or malformed coordinate becomes NaN. Malformed input beyond
// that is passed through untouched in Fields.
func RecordFromFields(fields map[string]string) AccidentRecord {
	return AccidentRecord{
		State:     parseIntOrZero(fields[ColState]),
		Month:     parseIntOrZero(fields[ColMonth]),
		Longitude: parseFloatOrNaN(fields[ColLongitude]),
		Latitude:  parseFloatOrNaN(fields[ColLatitude]),
		Fields:    fields,
	}
}

// SanitizeCoordinates returns a copy of r with sentinel coordinates replaced
// by NaN. The copy shares the Fields map; only the typed coordinate fields
// change, so the raw cells remain available.
func SanitizeCoordinates(r AccidentRecord) AccidentRecord {
	if r.Longitude > LongitudeSentinel {
		r.Longitude = math.NaN()
	}
	if r.Latitude > LatitudeSentinel {
		r.Latitude = math.NaN()
	}
	return r
}

// ParseStateCode coerces a state code argument to an integer the way the
// dataset encodes it: plain integers pass through, decimals truncate toward
// zero, anything else is an error naming the input.
func ParseStateCode(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f), nil
	}
	return 0, fmt.Errorf("invalid state code %q", v)
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseFloatOrNaN parses a string as float64, returning NaN on failure so
// downstream code treats the cell as missing.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
