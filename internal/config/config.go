package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// SessionStore selects where wizard sessions live: "memory" or "sql".
	SessionStore string
	DBDriver     string
	DBDSN        string

	// StandardsBaseURL is the remote quality-standard API root.
	StandardsBaseURL string
	StandardsTimeout time.Duration

	// Wizard policy flags; the source variants disagree on both, so they
	// are deployment choices here.
	AllowPrevious   bool
	ResetOnComplete bool
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:    addr,
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),

		SessionStore: envOr("SESSION_STORE", "memory"),
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),

		StandardsBaseURL: envOr("STANDARDS_BASE_URL", "https://cim.baliyoventures.com/api/koshi_quality_standard"),
		StandardsTimeout: envDur("STANDARDS_TIMEOUT", 30*time.Second),

		AllowPrevious:   envBool("WIZARD_ALLOW_PREVIOUS", true),
		ResetOnComplete: envBool("WIZARD_RESET_ON_COMPLETE", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
