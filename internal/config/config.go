// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file, when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults, most importantly the upstream car API base URL.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before we read anything.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix CARMARKET_. The first segment after the
	prefix names the section and the remainder is the field, so

	  CARMARKET_SERVER_PORT             -> server.port
	  CARMARKET_UPSTREAM_BASE_URL       -> upstream.base_url
	  CARMARKET_OBSERVABILITY_LOGGING_LEVEL -> observability.logging.level

	Observability has one more level of nesting (logging, new_relic,
	health_checks), which envKey handles explicitly.
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "CARMARKET_"

// DefaultUpstreamBaseURL is the car API used when none is configured.
const DefaultUpstreamBaseURL = "https://car-nextjs-api.cheatdev.online"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Upstream      UpstreamConfig       `koanf:"upstream" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored as seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// MaxBodySize caps request bodies on /api, in echo's size notation
	// ("1M", "512K").
	MaxBodySize string `koanf:"max_body_size" validate:"required"`

	// RateLimit is the per-client request rate allowed on /api, in requests
	// per second. 0, the default, leaves /api unthrottled.
	RateLimit      float64 `koanf:"rate_limit" validate:"min=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=0"`
}

// UpstreamConfig points at the external car API that owns all real state.
type UpstreamConfig struct {
	BaseURL          string        `koanf:"base_url" validate:"required,url"`
	Timeout          time.Duration `koanf:"timeout" validate:"min=1s"`
	MaxResponseBytes int64         `koanf:"max_response_bytes" validate:"min=1"`
	UserAgent        string        `koanf:"user_agent" validate:"required"`
}

// AuthConfig names the cookie holding the opaque bearer token. The token is
// never issued or verified here; it's only forwarded.
type AuthConfig struct {
	CookieName string `koanf:"cookie_name" validate:"required"`
}

// DefaultConfig returns the configuration used when no env var overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"http://localhost:8080"},
			MaxBodySize:        "1M",
		},
		Upstream: UpstreamConfig{
			BaseURL:          DefaultUpstreamBaseURL,
			Timeout:          10 * time.Second,
			MaxResponseBytes: 10_000_000,
			UserAgent:        "carmarket/1.0",
		},
		Auth:          AuthConfig{CookieName: "access_token"},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey turns a raw variable name into a koanf key path.
// Variables outside the prefix yield "" and are skipped by the provider.
func envKey(s string) string {
	if !strings.HasPrefix(s, EnvPrefix) {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))

	for _, nested := range []string{"observability_logging_", "observability_new_relic_", "observability_health_checks_"} {
		if strings.HasPrefix(key, nested) {
			section := strings.TrimSuffix(strings.TrimPrefix(nested, "observability_"), "_")
			return "observability." + section + "." + strings.TrimPrefix(key, nested)
		}
	}

	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

// listKeys are split on commas instead of being kept as a single string.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it, applies observability defaults, and returns it.
//
// Behavior summary:
//   - Loads env vars with prefix CARMARKET_
//   - Unmarshals into Config (unset fields keep their defaults)
//   - Validates required config blocks/fields
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envKey(key)
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Only reachable if someone hands us a Config without defaults.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = "carmarket"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
