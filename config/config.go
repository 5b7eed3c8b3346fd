package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Strategy  StrategyConfig
	Browser   BrowserConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// StrategyConfig controls the extraction strategies.
type StrategyConfig struct {
	// StaticTimeout is the deadline for the static-A fetch.
	// static-B deliberately carries no explicit timeout.
	StaticTimeout time.Duration // default: 15s

	// RenderTimeout is the deadline for one browser-render attempt,
	// covering navigation, script execution and extraction.
	RenderTimeout time.Duration // default: 60s

	// UserAgent is sent by every strategy.
	UserAgent string // default: Chrome desktop UA
}

// BrowserConfig controls the headless browsers used by the render
// strategies. Each render invocation launches and tears down its own
// browser; nothing here configures pooling.
type BrowserConfig struct {
	// Headless controls whether the browsers run headless.
	Headless bool // default: true

	// NoSandbox disables the Chrome sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the browser binary path.
	BrowserBin string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("CASCADE_HOST", "0.0.0.0"),
			Port: envIntOr("CASCADE_PORT", 8080),
			Mode: envOr("CASCADE_MODE", "release"),
		},
		Strategy: StrategyConfig{
			StaticTimeout: envDurationOr("CASCADE_STATIC_TIMEOUT", 15*time.Second),
			RenderTimeout: envDurationOr("CASCADE_RENDER_TIMEOUT", 60*time.Second),
			UserAgent:     envOr("CASCADE_USER_AGENT", defaultUserAgent),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("CASCADE_HEADLESS", true),
			NoSandbox:  envBoolOr("CASCADE_NO_SANDBOX", false),
			BrowserBin: os.Getenv("CASCADE_BROWSER_BIN"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("CASCADE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("CASCADE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("CASCADE_RATE_RPS", 5.0),
			Burst:             envIntOr("CASCADE_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("CASCADE_LOG_LEVEL", "info"),
			Format: envOr("CASCADE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
