package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/inferspec/inferspec/spec"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// MaxInlineSize caps inline content inputs, in bytes.
	MaxInlineSize int64

	// Workers is the assembler worker-pool size; 0 means one per CPU.
	Workers int

	// DefaultVersion is the target version the generate tool uses when the
	// input omits one.
	DefaultVersion spec.Version

	// FailFast aborts generation on the first error-severity issue by
	// default.
	FailFast bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from INFERSPEC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:  envInt64("INFERSPEC_MAX_INLINE_SIZE", 10*1024*1024),
		Workers:        envInt("INFERSPEC_WORKERS", 0),
		DefaultVersion: envVersion("INFERSPEC_DEFAULT_VERSION", spec.Version303),
		FailFast:       envBool("INFERSPEC_FAIL_FAST", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envVersion(key string, fallback spec.Version) spec.Version {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := spec.ParseVersion(v)
	if err != nil {
		slog.Warn("invalid version env var, using default", "key", key, "value", v, "default", fallback.String())
		return fallback
	}
	return parsed
}
