package domain

import "math"

// Column names of interest in yearly FARS accident files. The source data
// spells longitude without the final E.
const (
	ColState     = "STATE"
	ColMonth     = "MONTH"
	ColLongitude = "LONGITUD"
	ColLatitude  = "LATITUDE"
)

// Sentinel thresholds for unknown coordinates. FARS encodes an unknown
// position as an out-of-range value rather than an empty cell; anything
// beyond these bounds means "not reported".
const (
	LongitudeSentinel = 900.0 // LONGITUD > 900 is unknown
	LatitudeSentinel  = 90.0  // LATITUDE > 90 is unknown
)

// AccidentRecord is one fatal-crash report row from a yearly accident file.
// State, Month, Longitude, and Latitude are parsed into typed fields; every
// column, used or not, is preserved verbatim in Fields keyed by header name.
type AccidentRecord struct {
	State     int     // FIPS state code
	Month     int     // calendar month 1-12
	Longitude float64 // degrees; raw sentinel preserved, NaN when the cell is absent
	Latitude  float64 // degrees; raw sentinel preserved, NaN when the cell is absent

	Fields map[string]string
}

// LongitudeMissing reports whether the record's longitude is unusable:
// either absent from the row or the FARS unknown sentinel.
func (r AccidentRecord) LongitudeMissing() bool {
	return math.IsNaN(r.Longitude) || r.Longitude > LongitudeSentinel
}

// LatitudeMissing reports whether the record's latitude is unusable.
func (r AccidentRecord) LatitudeMissing() bool {
	return math.IsNaN(r.Latitude) || r.Latitude > LatitudeSentinel
}

// ValidMonth reports whether m is a calendar month.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}
