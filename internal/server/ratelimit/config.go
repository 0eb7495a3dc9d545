package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	// Path is matched segment by segment; "*" matches any single segment.
	Path   string
	Method string
	Limit  int
	Window time.Duration
	// Burst defaults to Limit when zero.
	Burst int
	// PerPath gives every concrete path its own limiter instead of sharing
	// one across the pattern.
	PerPath bool
}

func (e *EndpointConfig) burst() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

func (e *EndpointConfig) key(path string) string {
	if e.PerPath || e.Path == "" {
		return path
	}
	return e.Path
}

// DefaultConfig returns the limits used when no environment overrides exist.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Allowlist:       map[string]bool{},
		Denylist:        map[string]bool{},
		Endpoints:       DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Tailoring calls an
// external AI service and gets the strictest tier.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/sessions/*/tailor", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/normalize", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/reconcile", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// LoadConfig loads rate limiting configuration from environment variables
// through lookup, normally os.LookupEnv.
func LoadConfig(lookup func(string) (string, bool)) *Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := DefaultConfig()
	cfg.Enabled = envBool(lookup, "RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = envInt(lookup, "RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration(lookup, "RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration(lookup, "RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	if v, ok := lookup("RATE_LIMIT_ALLOWLIST"); ok {
		cfg.Allowlist = parseList(v)
	}
	if v, ok := lookup("RATE_LIMIT_DENYLIST"); ok {
		cfg.Denylist = parseList(v)
	}
	return cfg
}

func envInt(lookup func(string) (string, bool), key string, def int) int {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func envBool(lookup func(string) (string, bool), key string, def bool) bool {
	if v, ok := lookup(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func envDuration(lookup func(string) (string, bool), key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// parseList parses a comma-separated list of client IDs into a set.
func parseList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
