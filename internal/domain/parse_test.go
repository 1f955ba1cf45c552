package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFromFields(t *testing.T) {
	t.Run("typical row", func(t *testing.T) {
		fields := map[string]string{
			"STATE":    "1",
			"ST_CASE":  "10001",
			"MONTH":    "7",
			"LONGITUD": "-86.79654",
			"LATITUDE": "33.52398",
			"FATALS":   "1",
		}
		rec := RecordFromFields(fields)

		assert.Equal(t, 1, rec.State)
		assert.Equal(t, 7, rec.Month)
		assert.InDelta(t, -86.79654, rec.Longitude, 1e-9)
		assert.InDelta(t, 33.52398, rec.Latitude, 1e-9)
		assert.Equal(t, "10001", rec.Fields["ST_CASE"], "unused columns pass through")
		assert.Equal(t, "1", rec.Fields["FATALS"])
	})

	t.Run("sentinel coordinates preserved raw", func(t *testing.T) {
		rec := RecordFromFields(map[string]string{
			"STATE":    "48",
			"MONTH":    "2",
			"LONGITUD": "999.9999",
			"LATITUDE": "99.9999",
		})

		assert.InDelta(t, 999.9999, rec.Longitude, 1e-9)
		assert.InDelta(t, 99.9999, rec.Latitude, 1e-9)
		assert.True(t, rec.LongitudeMissing())
		assert.True(t, rec.LatitudeMissing())
	})

	t.Run("absent cells", func(t *testing.T) {
		rec := RecordFromFields(map[string]string{"STATE": "6"})

		assert.Equal(t, 6, rec.State)
		assert.Equal(t, 0, rec.Month)
		assert.True(t, math.IsNaN(rec.Longitude))
		assert.True(t, math.IsNaN(rec.Latitude))
		assert.True(t, rec.LongitudeMissing())
	})

	t.Run("malformed cells", func(t *testing.T) {
		rec := RecordFromFields(map[string]string{
			"STATE":    "Texas",
			"MONTH":    "2.x",
			"LONGITUD": "west",
			"LATITUDE": "",
		})

		assert.Equal(t, 0, rec.State)
		assert.Equal(t, 0, rec.Month)
		assert.True(t, math.IsNaN(rec.Longitude))
		assert.True(t, math.IsNaN(rec.Latitude))
	})
}

func TestCoordinateMissing(t *testing.T) {
	tests := []struct {
		name       string
		lon, lat   float64
		lonMissing bool
		latMissing bool
	}{
		{"valid pair", -86.8, 33.5, false, false},
		{"longitude sentinel", 999.9999, 33.5, true, false},
		{"latitude sentinel", -86.8, 99.9999, false, true},
		{"both sentinels", 999.9999, 99.9999, true, true},
		{"just under thresholds", 899.9, 89.9, false, false},
		{"exactly at thresholds", 900.0, 90.0, false, false},
		{"NaN pair", math.NaN(), math.NaN(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AccidentRecord{Longitude: tt.lon, Latitude: tt.lat}
			assert.Equal(t, tt.lonMissing, rec.LongitudeMissing(), "longitude")
			assert.Equal(t, tt.latMissing, rec.LatitudeMissing(), "latitude")
		})
	}
}

func TestSanitizeCoordinates(t *testing.T) {
	t.Run("sentinels become NaN", func(t *testing.T) {
		rec := AccidentRecord{Longitude: 999.9999, Latitude: 99.9999}
		out := SanitizeCoordinates(rec)

		assert.True(t, math.IsNaN(out.Longitude))
		assert.True(t, math.IsNaN(out.Latitude))
	})

	t.Run("valid coordinates untouched", func(t *testing.T) {
		rec := AccidentRecord{Longitude: -97.74, Latitude: 30.27}
		out := SanitizeCoordinates(rec)

		assert.InDelta(t, -97.74, out.Longitude, 1e-9)
		assert.InDelta(t, 30.27, out.Latitude, 1e-9)
	})

	t.Run("raw cells survive sanitization", func(t *testing.T) {
		rec := RecordFromFields(map[string]string{
			"STATE":    "1",
			"MONTH":    "3",
			"LONGITUD": "999.9999",
			"LATITUDE": "33.5",
		})
		out := SanitizeCoordinates(rec)

		assert.True(t, math.IsNaN(out.Longitude))
		assert.Equal(t, "999.9999", out.Fields["LONGITUD"])
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		rec := AccidentRecord{Longitude: 999.9999, Latitude: 33.5}
		_ = SanitizeCoordinates(rec)
		assert.InDelta(t, 999.9999, rec.Longitude, 1e-9)
	})
}

func TestParseStateCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"plain integer", "1", 1, false},
		{"two digits", "48", 48, false},
		{"decimal truncates", "48.9", 48, false},
		{"whitespace", " 6 ", 6, false},
		{"words", "Texas", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStateCode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid state code")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(0))
	assert.False(t, ValidMonth(13))
	assert.False(t, ValidMonth(-1))
}
