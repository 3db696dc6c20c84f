package main

import (
	"context"
	"flag"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/2beens/fitprogress/internal/cache"
	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
	"github.com/2beens/fitprogress/internal/logging"
	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/sheetsync"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
)

// google sheets sync cmd: pushes stored entries missing from the sheet, or pulls the sheet into the db

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	spreadsheetID := flag.String("spreadsheet-id", "", "google spreadsheet id (overrides config)")
	credentialsFile := flag.String("creds", "", "google service account credentials json (overrides config)")
	logsPath := flag.String("logs-path", "", "sync logs file path (empty for stdout)")
	pull := flag.Bool("pull", false, "import the sheet rows into the db instead of pushing")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall sync timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugln("no .env file found")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		Component:     "sheets-sync",
		LogFileName:   *logsPath,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
	})

	log.Println("starting sheets sync ...")

	if *spreadsheetID == "" {
		*spreadsheetID = cfg.SheetsSpreadsheetID
	}
	if *credentialsFile == "" {
		*credentialsFile = cfg.SheetsCredentialsPath
	}
	if *credentialsFile == "" {
		log.Fatalln("google sheets credentials json not specified")
	}
	credentialsBytes, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	metricsManager := metrics.NewManager("fitprogress", "sheets_sync", prometheus.NewRegistry())

	httpClient, err := sheetsync.NewTracedHTTPClient(ctx, credentialsBytes)
	if err != nil {
		log.Fatalf("failed to create sheets http client: %s", err)
	}

	syncService, err := sheetsync.NewService(
		ctx,
		*spreadsheetID,
		cfg.SheetsRange,
		metricsManager,
		option.WithHTTPClient(httpClient),
	)
	if err != nil {
		log.Fatalf("failed to create sheets sync service: %s", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITPROGRESS_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("failed to create db pool: %s", err)
	}
	defer dbPool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("FITPROGRESS_REDIS_PASS"),
		DB:       0,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	progressService := progress.NewService(
		progress.NewRepo(dbPool),
		cache.NewDashboardCache(rdb, time.Duration(cfg.DashboardCacheTTLSeconds)*time.Second),
		metricsManager,
	)

	if *pull {
		result, err := pullSheet(ctx, syncService, progressService)
		if err != nil {
			log.Fatalf("pull failed after %d created, %d updated: %s", result.Created, result.Updated, err)
		}
		log.Printf("pull done: %d entries created, %d updated", result.Created, result.Updated)
		return
	}

	entries, err := progressService.List(ctx, progress.EntryParams{}, "")
	if err != nil {
		log.Fatalf("list entries: %s", err)
	}

	result, err := syncService.Sync(ctx, entries)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf(
		"sync done: %d rows already in sheet, %d appended [%s] %s",
		result.Existing, result.Appended, result.UpdatedRange, syncService.SheetURL(),
	)
}
