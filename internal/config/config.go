package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// charts
	ChartsOutputDir string `toml:"charts_output_dir"`
	ChartWidth      int    `toml:"chart_width"`
	ChartHeight     int    `toml:"chart_height"`

	// google sheets
	SheetsSpreadsheetID   string `toml:"sheets_spreadsheet_id"`
	SheetsRange           string `toml:"sheets_range"`
	SheetsCredentialsPath string `toml:"sheets_credentials_path"`

	// http api
	CorsAllowedOrigins       []string `toml:"cors_allowed_origins"`
	RateLimitAllowedPerMin   int      `toml:"rate_limit_allowed_per_min"`
	DashboardCacheTTLSeconds int      `toml:"dashboard_cache_ttl_seconds"`
	ChartCacheSizeMB         int      `toml:"chart_cache_size_mb"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not set", env)
	}

	cfg.setDefaults()
	return cfg, nil
}

// Load reads the TOML config file at path and returns the section for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "debug"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.ChartsOutputDir == "" {
		c.ChartsOutputDir = "."
	}
	if c.ChartWidth == 0 {
		c.ChartWidth = 1024
	}
	if c.ChartHeight == 0 {
		c.ChartHeight = 640
	}
	if c.SheetsRange == "" {
		c.SheetsRange = "Sheet1!A:H"
	}
	if c.RateLimitAllowedPerMin == 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.DashboardCacheTTLSeconds == 0 {
		c.DashboardCacheTTLSeconds = 300
	}
	if c.ChartCacheSizeMB == 0 {
		c.ChartCacheSizeMB = 128
	}
}
