//go:build integration

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/2beens/fitprogress/internal/config"
)

const (
	serverPort = 9000
	serverHost = "127.0.0.1"
	testDBName = "fitprogress"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

// containers holds the docker resources the suite runs against.
type containers struct {
	dockerPool   *dockertest.Pool
	DB           *sql.DB
	RedisPort    string
	PostgresPort string
	teardown     []func()
}

func startContainers() (*containers, error) {
	c := &containers{
		teardown: make([]func(), 0),
	}

	var err error
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	c.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}

	// uses pool to try to connect to Docker
	if err = c.dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}

	if err := c.redisSetup(); err != nil {
		c.cleanup()
		return nil, fmt.Errorf("failed to setup redis: %w", err)
	}

	if err := c.postgresSetup(); err != nil {
		c.cleanup()
		return nil, fmt.Errorf("failed to setup postgres: %w", err)
	}

	return c, nil
}

func (c *containers) cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			fmt.Printf(" --> test db close error: %s\n", err)
		}
	}
	for _, teardown := range c.teardown {
		teardown()
	}
}

func (c *containers) redisSetup() error {
	redisResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return fmt.Errorf("run redis: %w", err)
	}

	c.teardown = append(c.teardown, func() {
		if err := redisResource.Close(); err != nil {
			fmt.Printf("redis teardown: %s\n", err)
		}
	})

	c.RedisPort = redisResource.GetPort("6379/tcp")
	return nil
}

func (c *containers) postgresSetup() error {
	pgResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return fmt.Errorf("dockerpool run postgres: %w", err)
	}

	c.teardown = append(c.teardown, func() {
		if err := pgResource.Close(); err != nil {
			fmt.Printf("postgres teardown: %s\n", err)
		}
	})

	c.PostgresPort = pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/%s?sslmode=disable", c.PostgresPort, testDBName)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open db conn: %w", err)
	}
	c.DB = db

	if err := c.dockerPool.Retry(db.Ping); err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}

	applied, err := applyMigrations(db, "../migrations")
	if err != nil {
		return err
	}
	log.Printf("postgres setup done, %d migrations applied\n", applied)

	return nil
}

// applyMigrations runs the *.up.sql files from dir, in file name order.
func applyMigrations(db *sql.DB, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		migration, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := db.ExecContext(context.Background(), string(migration)); err != nil {
			return 0, fmt.Errorf("apply migration %s: %w", f, err)
		}
	}
	return len(files), nil
}

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Environment:              "development",
		Host:                     serverHost,
		Port:                     serverPort,
		LogLevel:                 "debug",
		LogToStdout:              true,
		RedisHost:                "localhost",
		RedisPort:                redisPort,
		PostgresPort:             postgresPort,
		PostgresHost:             "localhost",
		PostgresDBName:           testDBName,
		PrometheusMetricsHost:    serverHost,
		PrometheusMetricsPort:    "9001",
		ChartWidth:               640,
		ChartHeight:              480,
		CorsAllowedOrigins:       []string{"*"},
		RateLimitAllowedPerMin:   1000,
		DashboardCacheTTLSeconds: 60,
		ChartCacheSizeMB:         16,
	}
}
