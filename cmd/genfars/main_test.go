package main

import (
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/observability"
)

func TestWriteYearRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accident_2013.csv.bz2")
	rng := rand.New(rand.NewSource(1))

	require.NoError(t, writeYear(path, 2013, 200, rng))

	loader := dataset.NewLoader(dir, slog.Default(), observability.NewMetricsForTesting())
	table, err := loader.LoadYear(2013)
	require.NoError(t, err)

	assert.Equal(t, header, table.Columns)
	require.Len(t, table.Records, 200)

	sentinels := 0
	for _, rec := range table.Records {
		state, ok := domain.StateByCode(rec.State)
		require.True(t, ok, "state %d should be assigned", rec.State)
		assert.True(t, domain.ValidMonth(rec.Month), "month %d out of range", rec.Month)
		assert.Equal(t, "2013", rec.Fields["YEAR"])

		if rec.LongitudeMissing() || rec.LatitudeMissing() {
			sentinels++
			continue
		}
		assert.GreaterOrEqual(t, rec.Longitude, state.Bound.Min[0])
		assert.LessOrEqual(t, rec.Longitude, state.Bound.Max[0])
		assert.GreaterOrEqual(t, rec.Latitude, state.Bound.Min[1])
		assert.LessOrEqual(t, rec.Latitude, state.Bound.Max[1])
	}
	assert.Less(t, sentinels, 30, "sentinel share should stay small")
}

func TestWriteYearDeterministic(t *testing.T) {
	dir := t.TempDir()

	load := func(name string, seed int64) *dataset.Table {
		path := filepath.Join(dir, name)
		require.NoError(t, writeYear(path, 2014, 50, rand.New(rand.NewSource(seed))))
		table, err := dataset.NewLoader(dir, slog.Default(), observability.NewMetricsForTesting()).ReadFile(path)
		require.NoError(t, err)
		return table
	}

	first := load("accident_2014.csv.bz2", 7)
	second := load("again_2014.csv.bz2", 7)

	require.Equal(t, len(first.Records), len(second.Records))
	for i := range first.Records {
		assert.Equal(t, first.Records[i].Fields, second.Records[i].Fields)
	}
}
