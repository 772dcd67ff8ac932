package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message;
// policy knobs fall back to sensible defaults.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to verify bearer tokens
	CancelWindow   time.Duration // minimum lead time before slot start for cancellation
	ReleaseRetries int           // bounded retries for compensating seat releases
	PremiumThrough int           // last row ordinal assigned PREMIUM at layout generation
	RegularThrough int           // last row ordinal assigned REGULAR at layout generation
}

// Load reads configuration values from environment variables and returns a
// Config.  Database and JWT settings are required; booking policy values
// default to the shipped policy (24h window, 3 retries, premium rows 1-3,
// regular rows 4-7, VIP beyond).
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		CancelWindow:   parseDur(getenv("CANCEL_WINDOW", "24h")),
		ReleaseRetries: atoi(getenv("RELEASE_RETRIES", "3")),
		PremiumThrough: atoi(getenv("ROW_BAND_PREMIUM_THROUGH", "3")),
		RegularThrough: atoi(getenv("ROW_BAND_REGULAR_THROUGH", "7")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// Helper functions shared with cache.go and ratelimit.go
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
