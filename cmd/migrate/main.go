package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogress/internal/config"
	"github.com/2beens/fitprogress/internal/db"
)

// migrate applies (up) or rolls back (down) the SQL migrations from the migrations dir.
// DB_URL env var wins over the postgres settings from the config file.

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	migrationsDir := flag.String("dir", "", "migrations directory (searched upwards from cwd when empty)")
	steps := flag.Int("steps", 0, "number of migrations to apply (negative rolls back), 0 means all")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		cfg, err := config.Load(*env, *configPath)
		if err != nil {
			log.Fatalf("DB_URL not set and config not loaded: %s", err)
		}
		dbURL = db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("FITPROGRESS_DB_PASS"),
		}.ConnString() + "?sslmode=disable"
	}

	if *migrationsDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatal(err)
		}
		*migrationsDir, err = findMigrationsDir(cwd)
		if err != nil {
			log.Fatal(err)
		}
	}
	absMigrationsPath, err := filepath.Abs(*migrationsDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("using migrations from %s", absMigrationsPath)

	m, err := migrate.New("file://"+absMigrationsPath, dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Errorf("close migrate: %v, %v", srcErr, dbErr)
		}
	}()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	if err := apply(m, cmd, *steps); err != nil {
		log.Fatal(err)
	}
	log.Printf("migration %s successful", cmd)
}

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
}

func apply(m migrator, cmd string, steps int) error {
	var err error
	switch {
	case steps != 0:
		err = m.Steps(steps)
	case cmd == "up":
		err = m.Up()
	case cmd == "down":
		err = m.Down()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// findMigrationsDir looks for a migrations dir in from and up to 5 of its parents.
func findMigrationsDir(from string) (string, error) {
	current := from
	for i := 0; i < 6; i++ {
		candidate := filepath.Join(current, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", errors.New("migrations directory not found")
}
