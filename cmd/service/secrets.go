package main

import "os"

// secrets are read from the environment (or .env), never from the config file.
type secrets struct {
	APIToken         string
	RedisPassword    string
	DBPassword       string
	SentryDSN        string
	HoneycombEnabled bool
}

type envLookup func(key string) string

func loadSecrets(getenv envLookup) (secrets, []string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	s := secrets{
		APIToken:         getenv("FITPROGRESS_API_TOKEN"),
		RedisPassword:    getenv("FITPROGRESS_REDIS_PASS"),
		DBPassword:       getenv("FITPROGRESS_DB_PASS"),
		SentryDSN:        getenv("SENTRY_DSN"),
		HoneycombEnabled: getenv("HONEYCOMB_ENABLED") == "true",
	}

	var warnings []string
	if s.APIToken == "" {
		warnings = append(warnings, "api token not set, writes are not protected. use FITPROGRESS_API_TOKEN")
	}
	if s.RedisPassword == "" {
		warnings = append(warnings, "redis password not set. use FITPROGRESS_REDIS_PASS")
	}
	if getenv("OTEL_SERVICE_NAME") == "" {
		warnings = append(warnings, "OTEL_SERVICE_NAME env var not set")
	}
	if s.HoneycombEnabled && getenv("HONEYCOMB_API_KEY") == "" {
		warnings = append(warnings, "HONEYCOMB_API_KEY env var not set")
	}

	return s, warnings
}
