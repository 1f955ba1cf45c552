// Command fars works with yearly accident files from the command line:
// month-by-year summaries, rendered state maps, and data integrity checks.
//
// Usage:
//
//	fars summarize -data-dir data -years 2013-2015
//	fars map -data-dir data -state 1 -year 2013 -o alabama_2013.png
//	fars check -data-dir data
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	chartadapter "github.com/cmpear/fars-analysis/internal/adapter/chart"
	"github.com/cmpear/fars-analysis/internal/analysis"
	"github.com/cmpear/fars-analysis/internal/dataset"
	"github.com/cmpear/fars-analysis/internal/domain"
	"github.com/cmpear/fars-analysis/internal/mapping"
	"github.com/cmpear/fars-analysis/internal/observability"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "summarize":
		if err := runSummarize(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	case "map":
		if err := runMap(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	case "check":
		code, err := runCheck(os.Args[2:])
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(code)
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: fars <command> [flags]

Commands:
  summarize   print month-by-year accident counts
  map         render a state accident map to an image file
  check       run integrity checks over yearly accident files

Run 'fars <command> -h' for command flags.
`)
}

// cliLogger logs human-readable lines to stderr so warnings and the
// nothing-to-plot notices stay visible next to normal output.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func runSummarize(args []string) error {
	fs := flag.NewFlagSet("fars summarize", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "directory holding accident_<year>.csv.bz2 files")
	yearsFlag := fs.String("years", "", "years to summarize, e.g. 2013,2014 or 2013-2015 (default: all available)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	loader := dataset.NewLoader(*dataDir, cliLogger(), metrics)

	years, err := resolveYears(loader, *yearsFlag, *dataDir)
	if err != nil {
		return err
	}

	summarizer := analysis.NewSummarizer(loader, cliLogger(), metrics)
	summary, err := summarizer.Summarize(years)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, summary)
	return nil
}

func runMap(args []string) error {
	fs := flag.NewFlagSet("fars map", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "directory holding accident_<year>.csv.bz2 files")
	stateFlag := fs.String("state", "", "state code, e.g. 1 for Alabama")
	yearFlag := fs.String("year", "", "year to map")
	out := fs.String("o", "", "output file (default: state_<code>_<year>.<format>)")
	formatFlag := fs.String("format", "png", "image format: png or svg")
	width := fs.Int("width", 1024, "image width in pixels")
	height := fs.Int("height", 768, "image height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *stateFlag == "" || *yearFlag == "" {
		fs.Usage()
		return errors.New("missing required flags: -state, -year")
	}

	code, err := domain.ParseStateCode(*stateFlag)
	if err != nil {
		return err
	}
	year, err := dataset.ParseYear(*yearFlag)
	if err != nil {
		return err
	}
	format, err := chartadapter.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	logger := cliLogger()
	metrics := observability.NewMetrics()
	loader := dataset.NewLoader(*dataDir, logger, metrics)
	renderer := chartadapter.NewRenderer(*width, *height, format)
	mapper := mapping.NewMapper(loader, renderer, logger, metrics)

	plot, err := mapper.Plot(code, year)
	if err != nil {
		return err
	}
	if plot == nil {
		return nil // the mapper logged the reason
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("state_%d_%d.%s", code, year, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mapper.RenderPlot(f, plot); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("wrote %s (%d of %s accidents had usable coordinates)",
		path, len(plot.Points), humanize.Comma(int64(plot.Records)))
	return nil
}

// resolveYears parses the -years flag or falls back to every year found in
// the data directory.
func resolveYears(loader *dataset.Loader, yearsFlag, dataDir string) ([]int, error) {
	if yearsFlag != "" {
		return dataset.ParseYears(yearsFlag)
	}

	years, err := loader.AvailableYears()
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no accident files under %s", dataDir)
	}
	return years, nil
}

func printSummary(w io.Writer, summary *analysis.Summary) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "MONTH")
	for _, year := range summary.Years {
		fmt.Fprintf(tw, "\t%d", year)
	}
	fmt.Fprintln(tw)

	for _, row := range summary.Rows {
		fmt.Fprint(tw, monthLabel(row.Month))
		for _, c := range row.Counts {
			if c == nil {
				fmt.Fprint(tw, "\t.")
			} else {
				fmt.Fprintf(tw, "\t%d", *c)
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%s accidents across %d year(s)\n",
		humanize.Comma(int64(summary.Total())), len(summary.Years))
}

// monthLabel renders 1..12 as Jan..Dec; anything else, which the data can
// contain, stays numeric.
func monthLabel(m int) string {
	if m >= 1 && m <= 12 {
		return time.Month(m).String()[:3]
	}
	return strconv.Itoa(m)
}

// --- check subcommand ---

// phase tracks pass/fail for one family of integrity checks.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runCheck(args []string) (int, error) {
	fs := flag.NewFlagSet("fars check", flag.ExitOnError)
	dataDir := fs.String("data-dir", "./data", "directory holding accident_<year>.csv.bz2 files")
	yearsFlag := fs.String("years", "", "years to check, e.g. 2013,2014 or 2013-2015 (default: all available)")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	loader := dataset.NewLoader(*dataDir, cliLogger(), observability.NewMetrics())

	years, err := resolveYears(loader, *yearsFlag, *dataDir)
	if err != nil {
		return 0, err
	}

	fmt.Println("=== Accident Data Integrity Check ===")
	fmt.Println()

	loadPhase := &phase{name: "accident files load"}
	monthPhase := &phase{name: "MONTH values in 1..12"}
	statePhase := &phase{name: "STATE codes assigned"}
	coordPhase := &phase{name: "coordinates plausible"}

	totalRecords := 0
	for _, year := range years {
		table, err := loader.LoadYear(year)
		if err != nil {
			loadPhase.errorf("year %d: %v", year, err)
			continue
		}
		totalRecords += len(table.Records)
		fmt.Printf("  %d: %s records\n", year, humanize.Comma(int64(len(table.Records))))

		for i, rec := range table.Records {
			row := i + 2 // header is line 1
			if !domain.ValidMonth(rec.Month) {
				monthPhase.errorf("year %d row %d: MONTH %d out of range", year, row, rec.Month)
			}
			if _, ok := domain.StateByCode(rec.State); !ok {
				statePhase.errorf("year %d row %d: unassigned STATE code %d", year, row, rec.State)
			}
			checkCoordinates(coordPhase, year, row, rec)
		}
	}

	// ── Report results ──
	phases := []*phase{loadPhase, monthPhase, statePhase, coordPhase}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-28s %s\n", p.name, status)
	}

	fmt.Printf("\nRecords: %s across %d year(s)\n", humanize.Comma(int64(totalRecords)), len(years))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll checks passed.")
		return 0, nil
	}
	fmt.Println("\nCheck FAILED.")
	return 1, nil
}

// checkCoordinates flags present coordinates outside geographic range.
// Sentinel and blank cells are legitimate missing markers, not errors.
func checkCoordinates(p *phase, year, row int, rec domain.AccidentRecord) {
	if !rec.LongitudeMissing() && (rec.Longitude < -180 || rec.Longitude > 180) {
		p.errorf("year %d row %d: LONGITUD %v out of range", year, row, rec.Longitude)
	}
	if !rec.LatitudeMissing() && (rec.Latitude < -90 || rec.Latitude > 90) {
		p.errorf("year %d row %d: LATITUDE %v out of range", year, row, rec.Latitude)
	}
}
