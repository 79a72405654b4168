package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The client has two outbound edges (the review
// backend and the Kakao Local REST API) plus an optional Redis used for
// session persistence.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	UpstreamBaseURL string // base URL of the review backend (without the /api suffix)
	KakaoAPIKey     string // REST API key for the Kakao Local places search
	SessionTTLMin   int    // session lifetime in minutes (the "tab session")
	AppIdleMin      int    // minutes of inactivity before per-session UI state is evicted
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		UpstreamBaseURL: must("API_BASE_URL"),
		KakaoAPIKey:     must("KAKAO_REST_API_KEY"),
		SessionTTLMin:   atoi(getenv("SESSION_TTL_MIN", "720")),
		AppIdleMin:      atoi(getenv("APP_STATE_IDLE_MIN", "60")),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

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
