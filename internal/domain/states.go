package domain

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// State describes one STATE code from the accident files: the numeric code,
// a display name, and an approximate geographic bounding box used as the
// base outline when rendering maps. Codes follow the GSA geographic codes
// FARS uses, which place Puerto Rico at 43 and the Virgin Islands at 52;
// the integers 3, 7, and 14 are unassigned.
type State struct {
	Code  int
	Name  string
	Bound orb.Bound
}

// states maps code to State. Bounds are approximate (about a tenth of a
// degree) which is plenty for a context outline behind a scatter plot.
var states = map[int]State{
	1:  {1, "Alabama", bound(-88.5, 30.2, -84.9, 35.0)},
	2:  {2, "Alaska", bound(-179.1, 51.2, -129.9, 71.4)},
	4:  {4, "Arizona", bound(-114.8, 31.3, -109.0, 37.0)},
	5:  {5, "Arkansas", bound(-94.6, 33.0, -89.6, 36.5)},
	6:  {6, "California", bound(-124.4, 32.5, -114.1, 42.0)},
	8:  {8, "Colorado", bound(-109.1, 37.0, -102.0, 41.0)},
	9:  {9, "Connecticut", bound(-73.7, 41.0, -71.8, 42.1)},
	10: {10, "Delaware", bound(-75.8, 38.4, -75.0, 39.8)},
	11: {11, "District of Columbia", bound(-77.1, 38.8, -76.9, 39.0)},
	12: {12, "Florida", bound(-87.6, 24.5, -80.0, 31.0)},
	13: {13, "Georgia", bound(-85.6, 30.4, -80.8, 35.0)},
	15: {15, "Hawaii", bound(-160.2, 18.9, -154.8, 22.2)},
	16: {16, "Idaho", bound(-117.2, 42.0, -111.0, 49.0)},
	17: {17, "Illinois", bound(-91.5, 37.0, -87.0, 42.5)},
	18: {18, "Indiana", bound(-88.1, 37.8, -84.8, 41.8)},
	19: {19, "Iowa", bound(-96.6, 40.4, -90.1, 43.5)},
	20: {20, "Kansas", bound(-102.1, 37.0, -94.6, 40.0)},
	21: {21, "Kentucky", bound(-89.6, 36.5, -81.9, 39.1)},
	22: {22, "Louisiana", bound(-94.0, 28.9, -88.8, 33.0)},
	23: {23, "Maine", bound(-71.1, 43.1, -66.9, 47.5)},
	24: {24, "Maryland", bound(-79.5, 37.9, -75.0, 39.7)},
	25: {25, "Massachusetts", bound(-73.5, 41.2, -69.9, 42.9)},
	26: {26, "Michigan", bound(-90.4, 41.7, -82.4, 48.2)},
	27: {27, "Minnesota", bound(-97.2, 43.5, -89.5, 49.4)},
	28: {28, "Mississippi", bound(-91.7, 30.2, -88.1, 35.0)},
	29: {29, "Missouri", bound(-95.8, 36.0, -89.1, 40.6)},
	30: {30, "Montana", bound(-116.1, 44.4, -104.0, 49.0)},
	31: {31, "Nebraska", bound(-104.1, 40.0, -95.3, 43.0)},
	32: {32, "Nevada", bound(-120.0, 35.0, -114.0, 42.0)},
	33: {33, "New Hampshire", bound(-72.6, 42.7, -70.6, 45.3)},
	34: {34, "New Jersey", bound(-75.6, 38.9, -73.9, 41.4)},
	35: {35, "New Mexico", bound(-109.1, 31.3, -103.0, 37.0)},
	36: {36, "New York", bound(-79.8, 40.5, -71.9, 45.0)},
	37: {37, "North Carolina", bound(-84.3, 33.8, -75.5, 36.6)},
	38: {38, "North Dakota", bound(-104.1, 45.9, -96.6, 49.0)},
	39: {39, "Ohio", bound(-84.8, 38.4, -80.5, 42.0)},
	40: {40, "Oklahoma", bound(-103.0, 33.6, -94.4, 37.0)},
	41: {41, "Oregon", bound(-124.6, 42.0, -116.5, 46.3)},
	42: {42, "Pennsylvania", bound(-80.5, 39.7, -74.7, 42.3)},
	43: {43, "Puerto Rico", bound(-67.3, 17.9, -65.2, 18.5)},
	44: {44, "Rhode Island", bound(-71.9, 41.1, -71.1, 42.0)},
	45: {45, "South Carolina", bound(-83.4, 32.0, -78.5, 35.2)},
	46: {46, "South Dakota", bound(-104.1, 42.5, -96.4, 45.9)},
	47: {47, "Tennessee", bound(-90.3, 35.0, -81.6, 36.7)},
	48: {48, "Texas", bound(-106.6, 25.8, -93.5, 36.5)},
	49: {49, "Utah", bound(-114.1, 37.0, -109.0, 42.0)},
	50: {50, "Vermont", bound(-73.4, 42.7, -71.5, 45.0)},
	51: {51, "Virginia", bound(-83.7, 36.5, -75.2, 39.5)},
	52: {52, "Virgin Islands", bound(-65.1, 17.7, -64.6, 18.4)},
	53: {53, "Washington", bound(-124.8, 45.5, -116.9, 49.0)},
	54: {54, "West Virginia", bound(-82.6, 37.2, -77.7, 40.6)},
	55: {55, "Wisconsin", bound(-92.9, 42.5, -86.8, 47.1)},
	56: {56, "Wyoming", bound(-111.1, 41.0, -104.1, 45.0)},
}

func bound(minLon, minLat, maxLon, maxLat float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
}

// StateByCode looks up a state by its numeric code.
func StateByCode(code int) (State, bool) {
	s, ok := states[code]
	return s, ok
}

// StateOrFallback returns the named state for known codes and a placeholder
// with an empty bound otherwise. The accident files are the authority on
// which codes exist in a given year; this table only supplies presentation
// details.
func StateOrFallback(code int) State {
	if s, ok := states[code]; ok {
		return s
	}
	return State{Code: code, Name: fmt.Sprintf("state %d", code)}
}

// StateCodes returns all known state codes in ascending order.
func StateCodes() []int {
	codes := make([]int, 0, len(states))
	for code := range states {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
