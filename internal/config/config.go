// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for the package catalog. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// RedisURL selects the Redis session store when set (redis://host:port/db).
	// Empty means sessions are kept in process memory.
	RedisURL string

	// SessionTTL is how long an idle estimator session survives. Defaults to 30m.
	SessionTTL time.Duration

	// RateLimitRPS and RateLimitBurst size the per-client token bucket.
	// Defaults: 10 requests per second, bursts of 20.
	RateLimitRPS   float64
	RateLimitBurst int

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SESRegion and SESFromEmail enable booking confirmation emails through
	// AWS SES. Both must be set; otherwise emails are only logged.
	SESRegion    string
	SESFromEmail string
}

// EmailEnabled reports whether SES delivery is configured.
func (c Config) EmailEnabled() bool {
	return c.SESRegion != "" && c.SESFromEmail != ""
}

var defaults = map[string]string{
	"PORT":             "8080",
	"LOG_LEVEL":        "info",
	"CORS_ORIGINS":     "http://localhost:5173",
	"SESSION_TTL":      "30m",
	"RATE_LIMIT_RPS":   "10",
	"RATE_LIMIT_BURST": "20",
	"MAX_BODY_BYTES":   "1048576",
}

// Load reads configuration from environment variables and returns a Config.
// Empty variables count as unset. Returns an error listing any required
// variables that are not set, or the first variable that does not parse.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	cfg := Config{
		Port:         v.GetString("PORT"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSOrigins:  splitCSV(v.GetString("CORS_ORIGINS")),
		RedisURL:     v.GetString("REDIS_URL"),
		SESRegion:    v.GetString("SES_REGION"),
		SESFromEmail: v.GetString("SES_FROM_EMAIL"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.SessionTTL, err = positiveDuration(v, "SESSION_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(v.GetString("RATE_LIMIT_RPS"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		return Config{}, invalid("RATE_LIMIT_RPS", v)
	}
	burst, err := strconv.Atoi(v.GetString("RATE_LIMIT_BURST"))
	if err != nil || burst < 1 {
		return Config{}, invalid("RATE_LIMIT_BURST", v)
	}
	cfg.RateLimitBurst = burst
	if cfg.MaxBodyBytes, err = strconv.ParseInt(v.GetString("MAX_BODY_BYTES"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		return Config{}, invalid("MAX_BODY_BYTES", v)
	}

	return cfg, nil
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return 0, invalid(key, v)
	}
	return d, nil
}

func invalid(key string, v *viper.Viper) error {
	return fmt.Errorf("invalid value for %s: %q", key, v.GetString(key))
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
