package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr       string // STUBSPOT_ADDR, default ":8080"
	DBPath     string // STUBSPOT_DB, default ":memory:"
	AuthToken  string // STUBSPOT_AUTH_TOKEN, optional
	WebhookURL string // STUBSPOT_WEBHOOK_URL, optional; empty disables events
	PortalID   int64  // STUBSPOT_PORTAL_ID, default 12345
	AppID      int64  // STUBSPOT_APP_ID, default 230
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Addr:       envOr("STUBSPOT_ADDR", ":8080"),
		DBPath:     envOr("STUBSPOT_DB", ":memory:"),
		AuthToken:  os.Getenv("STUBSPOT_AUTH_TOKEN"),
		WebhookURL: os.Getenv("STUBSPOT_WEBHOOK_URL"),
		PortalID:   envOrInt("STUBSPOT_PORTAL_ID", 12345),
		AppID:      envOrInt("STUBSPOT_APP_ID", 230),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
