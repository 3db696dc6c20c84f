package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogress/internal"
	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/logging"
	"github.com/2beens/fitprogress/pkg"
)

// fitprogress http api service

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file found, using environment only")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	envSecrets, warnings := loadSecrets(os.Getenv)

	logging.Setup(logging.LoggerSetupParams{
		Component:     "service",
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     envSecrets.SentryDSN,
	})

	log.Warnf("---->> running in [%s] environment, port %d", cfg.Environment, cfg.Port)
	for _, w := range warnings {
		log.Warnln(w)
	}
	if !envSecrets.HoneycombEnabled {
		log.Debugln("honeycomb tracing disabled")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			APIToken:                envSecrets.APIToken,
			VersionInfo:             versionInfo,
			RedisPassword:           envSecrets.RedisPassword,
			DBPassword:              envSecrets.DBPassword,
			HoneycombTracingEnabled: envSecrets.HoneycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	if err := server.Serve(cfg.Host, cfg.Port); err != nil {
		log.Fatalf("serve: %s", err)
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)

	if err := server.GracefulShutdown(); err != nil {
		os.Exit(1)
	}
}

// tryGetLastCommitHash assumes the binary runs from within the git checkout
func tryGetLastCommitHash() (string, error) {
	stdout, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
