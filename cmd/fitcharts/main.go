// fitcharts renders the progress and the calories / protein charts into PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogress/internal/charts"
	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/logging"
	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/sheet"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
)

const (
	sourceSample = "sample"
	sourceSheet  = "sheet"
	sourceDB     = "db"
)

type options struct {
	outDir    string
	source    string
	sheetPath string
	sheetName string
	phases    bool
	width     int
	height    int
	env       string
	config    string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.outDir, "out-dir", ".", "directory the chart images are written to")
	flag.StringVar(&opts.source, "source", sourceSample, "data source [sample | sheet | db]")
	flag.StringVar(&opts.sheetPath, "sheet", "", "path of the xlsx tracker file (source sheet)")
	flag.StringVar(&opts.sheetName, "sheet-name", "", "worksheet name, first sheet when empty")
	flag.BoolVar(&opts.phases, "phases", false, "also render the days per phase chart")
	flag.IntVar(&opts.width, "width", charts.DefaultWidth, "chart width in pixels")
	flag.IntVar(&opts.height, "height", charts.DefaultHeight, "chart height in pixels")
	flag.StringVar(&opts.env, "env", "development", "environment [prod | production | dev | development] (source db)")
	flag.StringVar(&opts.config, "config", "./config.toml", "path for the TOML config file (source db)")
	logLevel := flag.String("log-level", "info", "log level [trace | debug | info | warn | error]")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		Component:   "fitcharts",
		LogToStderr: true,
		LogLevel:    *logLevel,
	})

	paths, err := run(context.Background(), opts)
	if err != nil {
		log.Fatalf("fitcharts: %s", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

// chartData is what the chart files are rendered from.
type chartData struct {
	table  progress.Table
	intake []progress.IntakeSeries
	layout charts.NutritionLayout
	counts map[progress.Phase]int
}

func run(ctx context.Context, opts options) ([]string, error) {
	opts.source = strings.ToLower(strings.TrimSpace(opts.source))

	data, err := loadChartData(ctx, opts)
	if err != nil {
		return nil, err
	}

	metricsManager := metrics.NewManager("fitprogress", "fitcharts", prometheus.NewRegistry())
	writer := charts.NewWriter(opts.outDir, opts.width, opts.height, metricsManager)
	paths := make([]string, 0, 3)

	progressPath, err := writer.WriteProgress(data.table)
	if err != nil {
		return nil, err
	}
	paths = append(paths, progressPath)

	nutritionPath, line, err := writer.WriteNutrition(data.intake, data.layout)
	if err != nil {
		return nil, err
	}
	paths = append(paths, nutritionPath)
	if line != nil {
		log.Infof("calories / protein trend: slope %.5f, intercept %.3f", line.Slope, line.Intercept)
	}

	if opts.phases {
		phasesPath, err := writer.WritePhases(data.counts)
		if err != nil {
			return nil, err
		}
		paths = append(paths, phasesPath)
	}

	return paths, nil
}

// loadChartData expects opts.source to be lower case already.
func loadChartData(ctx context.Context, opts options) (chartData, error) {
	switch opts.source {
	case sourceSample:
		table := progress.SampleTable()
		return chartData{
			table:  table,
			intake: progress.SampleIntake(),
			layout: charts.DefaultNutritionLayout(),
			counts: phaseCounts(table),
		}, nil
	case sourceSheet, sourceDB:
		entries, err := loadEntries(ctx, opts)
		if err != nil {
			return chartData{}, err
		}
		log.Infof("loaded %d entries from %s", len(entries), opts.source)
		// phase days count every entry with a phase, same as the api phases chart
		return chartData{
			table:  progress.TableFromEntries(entries),
			intake: progress.IntakeFromEntries(entries),
			layout: charts.NutritionLayout{Zones: charts.DefaultTargetZones()},
			counts: progress.Summarize(entries, time.Now()).PhaseCounts,
		}, nil
	default:
		return chartData{}, fmt.Errorf("unknown source: %s", opts.source)
	}
}

func loadEntries(ctx context.Context, opts options) ([]progress.Entry, error) {
	if opts.source == sourceSheet {
		if opts.sheetPath == "" {
			return nil, fmt.Errorf("source sheet needs the -sheet path")
		}
		frame, err := sheet.Open(opts.sheetPath, opts.sheetName)
		if err != nil {
			return nil, err
		}
		return sheet.ToEntries(frame)
	}

	cfg, err := config.Load(opts.env, opts.config)
	if err != nil {
		return nil, err
	}
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITPROGRESS_DB_PASS"),
	})
	if err != nil {
		return nil, err
	}
	defer dbPool.Close()

	return progress.NewRepo(dbPool).ListAll(ctx, progress.EntryParams{})
}

// phaseCounts counts the rows per phase of a measurements table.
func phaseCounts(table progress.Table) map[progress.Phase]int {
	counts := make(map[progress.Phase]int, len(progress.Phases))
	for phase, subset := range table.SplitByPhase() {
		counts[phase] = len(subset)
	}
	return counts
}
