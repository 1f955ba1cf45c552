// Command genfars writes synthetic yearly accident files so the service
// and CLI can run without downloading the real archives. Output matches
// the published layout: accident_<year>.csv.bz2, one row per fatal crash,
// coordinates inside the reported state, and a small share of sentinel
// coordinates marking unknown crash sites.
//
// Usage:
//
//	go run ./cmd/genfars -out-dir data -years 2013-2015 -per-year 1000
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/paulmach/orb"

	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
)

// header mirrors the published accident files: every column this
// repository reads, plus enough unused ones to keep parsers honest.
var header = []string{
	"STATE", "ST_CASE", "PERSONS", "COUNTY", "CITY", "DAY", "MONTH", "YEAR",
	"DAY_WEEK", "HOUR", "MINUTE", "ROUTE", "LATITUDE", "LONGITUD",
	"HARM_EV", "MAN_COLL", "LGT_COND", "WEATHER", "FATALS", "DRUNK_DR",
}

// sentinelShare is the fraction of rows given unknown-location sentinels.
const sentinelShare = 0.03

func main() {
	log.SetFlags(0)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write accident_<year>.csv.bz2 files into")
	yearsFlag := flag.String("years", "2013-2015", "years to generate, e.g. 2013,2014 or 2013-2015")
	perYear := flag.Int("per-year", 1000, "accident rows per year")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}
	if *perYear <= 0 {
		return fmt.Errorf("-per-year must be positive, got %d", *perYear)
	}

	years, err := dataset.ParseYears(*yearsFlag)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	resolver := dataset.NewResolver(*outDir)

	for _, year := range years {
		path := resolver.Filename(year)
		if err := writeYear(path, year, *perYear, rng); err != nil {
			return fmt.Errorf("generating %s: %w", path, err)
		}
		log.Printf("wrote %s: %d records", path, *perYear)
	}

	return nil
}

func writeYear(path string, year, n int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		f.Close()
		return err
	}

	w := csv.NewWriter(bw)
	records := [][]string{header}

	caseSeq := make(map[int]int)
	codes := domain.StateCodes()
	for i := 0; i < n; i++ {
		state := codes[rng.Intn(len(codes))]
		caseSeq[state]++
		records = append(records, accidentRow(rng, state, caseSeq[state], year))
	}

	if err := w.WriteAll(records); err != nil {
		bw.Close()
		f.Close()
		return err
	}
	if err := bw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func accidentRow(rng *rand.Rand, stateCode, seq, year int) []string {
	state, _ := domain.StateByCode(stateCode)

	lat, lon := randomPoint(rng, state.Bound)
	latCell := fmt.Sprintf("%.5f", lat)
	lonCell := fmt.Sprintf("%.5f", lon)
	if rng.Float64() < sentinelShare {
		latCell, lonCell = "99.9999", "999.9999"
	}

	return []string{
		strconv.Itoa(stateCode),             // STATE
		strconv.Itoa(stateCode*10000 + seq), // ST_CASE
		strconv.Itoa(1 + rng.Intn(5)),       // PERSONS
		strconv.Itoa(1 + rng.Intn(199)),     // COUNTY
		"0",                                 // CITY
		strconv.Itoa(1 + rng.Intn(28)),      // DAY
		strconv.Itoa(1 + rng.Intn(12)),      // MONTH
		strconv.Itoa(year),                  // YEAR
		strconv.Itoa(1 + rng.Intn(7)),       // DAY_WEEK
		strconv.Itoa(rng.Intn(24)),          // HOUR
		strconv.Itoa(rng.Intn(60)),          // MINUTE
		strconv.Itoa(1 + rng.Intn(7)),       // ROUTE
		latCell,                             // LATITUDE
		lonCell,                             // LONGITUD
		strconv.Itoa(1 + rng.Intn(50)),      // HARM_EV
		strconv.Itoa(rng.Intn(12)),          // MAN_COLL
		strconv.Itoa(1 + rng.Intn(6)),       // LGT_COND
		strconv.Itoa(1 + rng.Intn(10)),      // WEATHER
		fatalsCell(rng),                     // FATALS
		strconv.Itoa(rng.Intn(2)),           // DRUNK_DR
	}
}

func randomPoint(rng *rand.Rand, b orb.Bound) (lat, lon float64) {
	lon = b.Min[0] + rng.Float64()*(b.Max[0]-b.Min[0])
	lat = b.Min[1] + rng.Float64()*(b.Max[1]-b.Min[1])
	return lat, lon
}

// fatalsCell skews toward single-fatality crashes like the real data.
func fatalsCell(rng *rand.Rand) string {
	if rng.Float64() < 0.85 {
		return "1"
	}
	return strconv.Itoa(2 + rng.Intn(3))
}
