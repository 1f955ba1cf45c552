// Package domain models Fatality Analysis Reporting System (FARS) accident
// data.
//
// # Data Source
//
// FARS is the NHTSA census of fatal motor-vehicle crashes on US public
// roads, published yearly at https://www.nhtsa.gov/research-data/fatality-analysis-reporting-system-fars.
// Each year's accident-level file is distributed as a comma-separated table
// with one row per fatal crash and several dozen columns; this repository
// bundles them bzip2-compressed as accident_<year>.csv.bz2.
//
// # FARS Data Conventions
//
// Columns of interest (the rest pass through unchanged):
//
//	STATE     GSA geographic state code. Mostly matches ANSI FIPS, except
//	          Puerto Rico is 43 and the Virgin Islands are 52. The codes
//	          3, 7, and 14 are unassigned, so not every integer in 1-56
//	          names a state.
//	MONTH     Calendar month of the crash, 1-12.
//	LONGITUD  Crash longitude in decimal degrees (note the spelling: the
//	          source column name drops the final E).
//	LATITUDE  Crash latitude in decimal degrees.
//
// Unknown coordinates:
//
//	FARS encodes an unknown position as an out-of-range sentinel rather
//	than an empty cell, e.g. 999.9999 for longitude and 99.9999 for
//	latitude. Anything with LONGITUD > 900 or LATITUDE > 90 means "not
//	reported" and must be treated as missing before plotting. The raw
//	sentinel is preserved at load time; [SanitizeCoordinates] replaces it
//	with NaN when a subset is being prepared for rendering.
//
// Missing cells:
//
//	An absent or malformed numeric cell loads as 0 for the integer columns
//	and NaN for the coordinate columns. The loaders never reject a row for
//	bad cells; validity is only enforced where it matters (plotting).
package domain
