// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Tailoring providers.
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// Config represents the configuration that can be loaded from a JSON file and
// the environment. All fields are optional; Defaults fills the rest.
type Config struct {
	// TailorEndpoint is the analyze endpoint of the tailoring service.
	TailorEndpoint string `json:"tailor_endpoint,omitempty" validate:"omitempty,url"`
	// TailorTimeout is a Go duration such as "10s".
	TailorTimeout  string `json:"tailor_timeout,omitempty"`
	Provider       string `json:"provider,omitempty" validate:"omitempty,oneof=http gemini"`
	GeminiAPIKey   string `json:"gemini_api_key,omitempty" validate:"required_if=Provider gemini"`
	// GeminiModel overrides the model used for tailoring.
	GeminiModel    string `json:"gemini_model,omitempty"`

	// DatabaseURL selects the Postgres store; empty uses the in-memory store.
	DatabaseURL string `json:"database_url,omitempty"`

	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`

	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// ExtraBullets lists additional bullet glyphs as one string.
	ExtraBullets string `json:"extra_bullets,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TailorEndpoint: "http://localhost:5000/api/analyze",
		TailorTimeout:  "10s",
		Provider:       ProviderHTTP,
		LogLevel:       "info",
		LogFormat:      "console",
		Port:           8080,
	}
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Load reads the optional JSON file at path, applies environment overrides,
// fills defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.LookupEnv)
	merged := cfg.MergeWithDefaults(Defaults())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
// lookup is os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	strVars := map[string]*string{
		"TAILOR_ENDPOINT": &c.TailorEndpoint,
		"TAILOR_TIMEOUT":  &c.TailorTimeout,
		"TAILOR_PROVIDER": &c.Provider,
		"GEMINI_API_KEY":  &c.GeminiAPIKey,
		"GEMINI_MODEL":    &c.GeminiModel,
		"DATABASE_URL":    &c.DatabaseURL,
		"LOG_LEVEL":       &c.LogLevel,
		"LOG_FORMAT":      &c.LogFormat,
		"EXTRA_BULLETS":   &c.ExtraBullets,
	}
	for name, field := range strVars {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Port = port
		}
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TailorEndpoint == "" {
		result.TailorEndpoint = defaults.TailorEndpoint
	}
	if result.TailorTimeout == "" {
		result.TailorTimeout = defaults.TailorTimeout
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ExtraBullets == "" {
		result.ExtraBullets = defaults.ExtraBullets
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigError{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag()), Cause: err}
		}
		return &ConfigError{Field: "config", Message: "invalid", Cause: err}
	}

	if c.TailorTimeout != "" {
		d, err := time.ParseDuration(c.TailorTimeout)
		if err != nil {
			return &ConfigError{Field: "tailor_timeout", Message: "not a duration", Cause: err}
		}
		if d <= 0 {
			return &ConfigError{Field: "tailor_timeout", Message: "must be positive"}
		}
	}

	return nil
}

// Timeout returns the parsed tailor timeout, or fallback when unset or
// invalid.
func (c *Config) Timeout(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(c.TailorTimeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// BulletGlyphs returns the extra bullet glyphs as runes.
func (c *Config) BulletGlyphs() []rune {
	var glyphs []rune
	for _, r := range c.ExtraBullets {
		if r != ' ' && r != ',' {
			glyphs = append(glyphs, r)
		}
	}
	return glyphs
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
