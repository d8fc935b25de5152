// Package config loads application configuration from environment
// variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The backend API root may be
// given explicitly or derived per request from the tenant hostname;
// both knobs live here so the wiring in main stays declarative.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	APIBaseURL  string // explicit backend API root; empty = derive per request from the tenant hostname
	TenantHost  string // fallback tenant hostname when a request carries none
	RabbitURL   string // AMQP broker URL; empty disables event publication
	AccessToken string // seed access token for the backend (optional)
	RefreshSeed string // seed refresh token for the backend (optional)
	CacheTTL    time.Duration
	CacheOn     bool
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		TenantHost:  os.Getenv("TENANT_HOST"),
		RabbitURL:   os.Getenv("RABBITMQ_URL"),
		AccessToken: os.Getenv("API_ACCESS_TOKEN"),
		RefreshSeed: os.Getenv("API_REFRESH_TOKEN"),
		CacheTTL:    envDur("CACHE_TTL", 30*time.Second),
		CacheOn:     envBool("CACHE_ENABLED", true),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return d
	}
	return b
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
