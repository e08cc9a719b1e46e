// Package config provides console configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.scout/config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Main configuration categories:
//   - Backend: server URL, API token, request timeout, client-side throttle
//   - Pagination: items per page and pages per batch for list views
//   - Editing: debounce interval for save-on-type fields
//   - Observability: OTLP trace export to a local agent
//
// Security: the API token is never logged; the config directory uses 0750
// permissions. Validation is fail-fast with sentinel errors for
// errors.Is() checks.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidServerURL indicates the backend URL is missing or malformed.
	ErrInvalidServerURL = errors.New("invalid server URL")

	// ErrInvalidItemsPerPage indicates items_per_page is below 1.
	ErrInvalidItemsPerPage = errors.New("invalid items per page")

	// ErrInvalidPagesPerBatch indicates pages_per_batch is below 1.
	ErrInvalidPagesPerBatch = errors.New("invalid pages per batch")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid request timeout")

	// ErrInvalidDebounce indicates the save debounce interval is out of range.
	ErrInvalidDebounce = errors.New("invalid debounce interval")
)

const (
	// DefaultItemsPerPage matches the backend's default page_size.
	DefaultItemsPerPage = 10

	// DefaultPagesPerBatch amortizes request count: one fetch loads this
	// many pages at once.
	DefaultPagesPerBatch = 5

	// DefaultDebounceMillis is the quiet interval before a description
	// edit is saved.
	DefaultDebounceMillis = 500

	// MaxItemsPerPage caps page size to keep responses bounded.
	MaxItemsPerPage = 1000
)

// Config stores console configuration.
// SECURITY: Sensitive fields are explicitly masked in MarshalJSON().
// When adding new sensitive fields (tokens, keys), update MarshalJSON.
type Config struct {
	// Backend connection
	ServerURL      string `mapstructure:"server_url" json:"server_url"`
	APIToken       string `mapstructure:"api_token" json:"api_token"` // SENSITIVE: masked in MarshalJSON
	TimeoutSeconds int    `mapstructure:"timeout_seconds" json:"timeout_seconds"`

	// Client-side throttle
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second"`
	RequestBurst      int     `mapstructure:"request_burst" json:"request_burst"`

	// Pagination geometry for list views
	ItemsPerPage  int `mapstructure:"items_per_page" json:"items_per_page"`
	PagesPerBatch int `mapstructure:"pages_per_batch" json:"pages_per_batch"`

	// Editing behavior
	DebounceMillis int `mapstructure:"debounce_millis" json:"debounce_millis"`

	// Display language for console strings
	Language string `mapstructure:"language" json:"language"`

	// Observability (see observability package)
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`
}

// TracingConfig configures OTLP trace export.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled" json:"enabled"`
	AgentHost   string `mapstructure:"agent_host" json:"agent_host"`
	Environment string `mapstructure:"environment" json:"environment"`
	ServiceName string `mapstructure:"service_name" json:"service_name"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".scout")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".") // Also support current directory

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// CRITICAL: Validate immediately (fail-fast)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("timeout_seconds", 30)
	viper.SetDefault("requests_per_second", 10.0)
	viper.SetDefault("request_burst", 20)
	viper.SetDefault("items_per_page", DefaultItemsPerPage)
	viper.SetDefault("pages_per_batch", DefaultPagesPerBatch)
	viper.SetDefault("debounce_millis", DefaultDebounceMillis)
	viper.SetDefault("language", "en")

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.agent_host", "localhost:4318")
	viper.SetDefault("tracing.environment", "dev")
	viper.SetDefault("tracing.service_name", "scout")
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables() {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail).
	// If this panics, it's a BUG in our code, not a runtime error.
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("server_url", "SCOUT_SERVER_URL")
	mustBind("api_token", "SCOUT_API_TOKEN")
	mustBind("language", "SCOUT_LANG")
	mustBind("tracing.enabled", "SCOUT_TRACING")
	mustBind("tracing.agent_host", "SCOUT_TRACE_AGENT")
}

// maskedValue is the placeholder for masked sensitive data.
// Full-width blocks (U+2588) avoid accidental substring matches against
// real secret material.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 chars or fewer are fully masked; longer ones show the first
// and last 2 characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.APIToken = maskSecret(a.APIToken)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
