package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Walk tool defaults.
	WalkLimit       int
	WalkDetailLimit int
	MaxLimit        int

	// Parse defaults.
	NormalizeTypes  bool
	StrictIDs       bool
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from RAML2OBJ_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("RAML2OBJ_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("RAML2OBJ_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("RAML2OBJ_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("RAML2OBJ_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("RAML2OBJ_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("RAML2OBJ_CACHE_SWEEP_INTERVAL", 60*time.Second),
		WalkLimit:          envInt("RAML2OBJ_WALK_LIMIT", 100),
		WalkDetailLimit:    envInt("RAML2OBJ_WALK_DETAIL_LIMIT", 25),
		MaxLimit:           envInt("RAML2OBJ_MAX_LIMIT", 1000),
		NormalizeTypes:     envBool("RAML2OBJ_NORMALIZE_TYPES", false),
		StrictIDs:          envBool("RAML2OBJ_STRICT_IDS", false),
		MaxInlineSize:      int64(envInt("RAML2OBJ_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("RAML2OBJ_ALLOW_PRIVATE_IPS", false),
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
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
