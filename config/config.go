// Package config provides configuration management for the badge service.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/badge-service/internal/badge"
)

// EnvConfigFile names the environment variable holding an optional config file path.
const EnvConfigFile = "BADGE_CONFIG"

// DefaultRequestTemplate points at the vcpkg port manifests on GitHub.
const DefaultRequestTemplate = "https://raw.githubusercontent.com/microsoft/vcpkg/master/ports/{package}/vcpkg.json"

// Config holds the complete application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Appearance AppearanceConfig `mapstructure:"appearance"`
	Cache      CacheConfig      `mapstructure:"caching"`
	Requests   RequestConfig    `mapstructure:"requests"`
	Resilience ResilienceConfig `mapstructure:"resilience"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`

	settings map[string]any
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	PathBase       string        `mapstructure:"path_base"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	SwaggerUser    string        `mapstructure:"swagger_user"`
	SwaggerPass    string        `mapstructure:"swagger_pass"`
}

// AppearanceConfig holds the badge look.
type AppearanceConfig struct {
	FontFamily          string  `mapstructure:"font_family"`
	FontSize            float64 `mapstructure:"font_size"`
	Height              float64 `mapstructure:"height"`
	Logo                string  `mapstructure:"logo"`
	MeasureFont         string  `mapstructure:"measure_font"`
	PrimaryBackground   string  `mapstructure:"primary_background"`
	PrimaryForeground   string  `mapstructure:"primary_foreground"`
	SecondaryBackground string  `mapstructure:"secondary_background"`
	SecondaryForeground string  `mapstructure:"secondary_foreground"`
}

// CacheConfig holds badge cache configuration.
type CacheConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	SingleFlight  bool          `mapstructure:"single_flight"`
}

// RequestConfig holds upstream metadata request configuration.
type RequestConfig struct {
	Template     string        `mapstructure:"template"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	MaxDelay     time.Duration `mapstructure:"max_delay"`
}

// ResilienceConfig holds circuit breaker settings shared by outbound calls.
type ResilienceConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds MongoDB configuration for the request log store.
type DatabaseConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URI          string        `mapstructure:"uri"`
	DatabaseName string        `mapstructure:"name"`
	LogsTTL      time.Duration `mapstructure:"logs_ttl"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var defaults = map[string]any{
	"server.port":            "8080",
	"server.path_base":       "",
	"server.rate_limit":      100,
	"server.rate_window":     "1m",
	"server.request_timeout": "10s",
	"server.cors_origins":    []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	"server.swagger_user":    "",
	"server.swagger_pass":    "",

	"appearance.font_family":          "Arial, Helvetica, sans-serif",
	"appearance.font_size":            12,
	"appearance.height":               20,
	"appearance.logo":                 badge.DefaultLogo,
	"appearance.measure_font":         "Fonts/arial.ttf",
	"appearance.primary_background":   "#444444",
	"appearance.primary_foreground":   "#FFFFFF",
	"appearance.secondary_background": "#F9C438",
	"appearance.secondary_foreground": "#000000",

	"caching.ttl":            "60s",
	"caching.sweep_interval": "1m",
	"caching.single_flight":  true,

	"requests.template":      DefaultRequestTemplate,
	"requests.timeout":       "5s",
	"requests.max_attempts":  3,
	"requests.initial_delay": "200ms",
	"requests.max_delay":     "2s",

	"resilience.failure_threshold": 5,
	"resilience.success_threshold": 2,
	"resilience.timeout":           "30s",

	"database.enabled":  false,
	"database.uri":      "mongodb://localhost:27017",
	"database.name":     "badge_service",
	"database.logs_ttl": "720h",

	"log.level":  "info",
	"log.pretty": false,
}

var envNames = map[string]string{
	"server.port":            "PORT",
	"server.path_base":       "PATH_BASE",
	"server.rate_limit":      "RATE_LIMIT",
	"server.rate_window":     "RATE_WINDOW",
	"server.request_timeout": "REQUEST_TIMEOUT",
	"server.cors_origins":    "CORS_ORIGINS",
	"server.swagger_user":    "SWAGGER_USER",
	"server.swagger_pass":    "SWAGGER_PASS",

	"appearance.font_family":          "APPEARANCE_FONT_FAMILY",
	"appearance.font_size":            "APPEARANCE_FONT_SIZE",
	"appearance.height":               "APPEARANCE_HEIGHT",
	"appearance.logo":                 "APPEARANCE_LOGO",
	"appearance.measure_font":         "APPEARANCE_MEASURE_FONT",
	"appearance.primary_background":   "APPEARANCE_PRIMARY_BACKGROUND",
	"appearance.primary_foreground":   "APPEARANCE_PRIMARY_FOREGROUND",
	"appearance.secondary_background": "APPEARANCE_SECONDARY_BACKGROUND",
	"appearance.secondary_foreground": "APPEARANCE_SECONDARY_FOREGROUND",

	"caching.ttl":            "CACHE_TTL",
	"caching.sweep_interval": "CACHE_SWEEP_INTERVAL",
	"caching.single_flight":  "CACHE_SINGLE_FLIGHT",

	"requests.template":      "REQUEST_TEMPLATE",
	"requests.timeout":       "REQUEST_TIMEOUT_UPSTREAM",
	"requests.max_attempts":  "RETRY_MAX_ATTEMPTS",
	"requests.initial_delay": "RETRY_INITIAL_DELAY",
	"requests.max_delay":     "RETRY_MAX_DELAY",

	"resilience.failure_threshold": "CIRCUIT_BREAKER_FAILURE_THRESHOLD",
	"resilience.success_threshold": "CIRCUIT_BREAKER_SUCCESS_THRESHOLD",
	"resilience.timeout":           "CIRCUIT_BREAKER_TIMEOUT",

	"database.enabled":  "MONGODB_ENABLED",
	"database.uri":      "MONGODB_URI",
	"database.name":     "MONGODB_DATABASE",
	"database.logs_ttl": "MONGODB_LOGS_TTL",

	"log.level":  "LOG_LEVEL",
	"log.pretty": "LOG_PRETTY",
}

// Load builds a Config from defaults, an optional config file and the
// environment, in increasing order of precedence. When file is empty the
// path in BADGE_CONFIG is used, if set.
func Load(file string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if file == "" {
		file = os.Getenv(EnvConfigFile)
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.settings = v.AllSettings()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Server.PathBase = normalizePathBase(c.Server.PathBase)
	c.Server.CORSOrigins = trimAll(c.Server.CORSOrigins)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must not be negative, got %d", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rate_window must be positive when rate limiting is enabled"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("caching.ttl must be positive, got %s", c.Cache.TTL))
	}
	if strings.TrimSpace(c.Requests.Template) == "" {
		errs = append(errs, errors.New("requests.template is required"))
	}
	if c.Requests.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("requests.max_attempts must be at least 1, got %d", c.Requests.MaxAttempts))
	}
	if c.Resilience.FailureThreshold < 1 {
		errs = append(errs, fmt.Errorf("resilience.failure_threshold must be at least 1, got %d", c.Resilience.FailureThreshold))
	}
	if c.Database.Enabled && c.Database.URI == "" {
		errs = append(errs, errors.New("database.uri is required when the database is enabled"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// WriteYAML writes the effective settings with secrets masked.
func (c *Config) WriteYAML(w io.Writer) error {
	settings := c.settings
	if settings == nil {
		settings = map[string]any{}
	}
	if server, ok := settings["server"].(map[string]any); ok {
		if pass, _ := server["swagger_pass"].(string); pass != "" {
			server["swagger_pass"] = "********"
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return err
	}
	return enc.Close()
}

func normalizePathBase(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func trimAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
