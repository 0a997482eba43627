// Package config loads the strategy engine's runtime configuration from
// an optional YAML file and STRATEGY_-prefixed environment variables.
// Environment variables override file values; anything left unset falls
// back to defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/layout"
	"github.com/dd0wney/cluso-strategy/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultAnalyzeTimeout  = 30 * time.Second
	DefaultLogLevel        = "info"
)

// Config is the full runtime configuration for the strategy engine.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Layout   LayoutConfig   `yaml:"layout"`
	Logging  LoggingConfig  `yaml:"logging"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AnalyzeTimeout  time.Duration `yaml:"analyze_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// AuthConfig controls API authentication. When Enabled is false the server
// accepts unauthenticated requests (local use).
type AuthConfig struct {
	Enabled   bool     `yaml:"enabled"`
	JWTSecret string   `yaml:"jwt_secret"`
	APIKeys   []string `yaml:"api_keys"` // bcrypt hashes, not plaintext
}

// CatalogConfig points at an optional knowledge catalog overlay. The engine
// ships with a built-in catalog; a configured path is merged over it.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LayoutConfig sets the default map canvas for the /map endpoint.
type LayoutConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
}

// LoggingConfig sets the structured log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AnalysisConfig caps the size of maps the analyzer will accept.
type AnalysisConfig struct {
	MaxComponents   int `yaml:"max_components"`
	MaxDependencies int `yaml:"max_dependencies"`
}

// UnmarshalYAML decodes the server section, parsing timeouts from duration
// strings like "30s" (yaml.v3 has no native time.Duration support).
func (s *ServerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Host            string   `yaml:"host"`
		Port            int      `yaml:"port"`
		ReadTimeout     string   `yaml:"read_timeout"`
		WriteTimeout    string   `yaml:"write_timeout"`
		ShutdownTimeout string   `yaml:"shutdown_timeout"`
		AnalyzeTimeout  string   `yaml:"analyze_timeout"`
		CORSOrigins     []string `yaml:"cors_origins"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	s.Host = raw.Host
	s.Port = raw.Port
	s.CORSOrigins = raw.CORSOrigins

	var err error
	if s.ReadTimeout, err = parseTimeout(raw.ReadTimeout); err != nil {
		return fmt.Errorf("read_timeout: %w", err)
	}
	if s.WriteTimeout, err = parseTimeout(raw.WriteTimeout); err != nil {
		return fmt.Errorf("write_timeout: %w", err)
	}
	if s.ShutdownTimeout, err = parseTimeout(raw.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}
	if s.AnalyzeTimeout, err = parseTimeout(raw.AnalyzeTimeout); err != nil {
		return fmt.Errorf("analyze_timeout: %w", err)
	}
	return nil
}

// DefaultConfig returns a configuration with every field set to its default.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the given YAML file, applies environment
// overrides and defaults, and validates the result. An empty path skips the
// file and uses environment plus defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LayoutDefaults converts the layout section into the geometry package's
// config, used when a map request does not specify its own canvas.
func (c *Config) LayoutDefaults() layout.LayoutConfig {
	return layout.LayoutConfig{
		Width:   c.Layout.Width,
		Height:  c.Layout.Height,
		Padding: c.Layout.Padding,
	}
}

// Validate checks the configuration and returns a combined error if any
// field is out of range.
func (c *Config) Validate() error {
	v := validation.NewConfigValidator("Config")

	v.Required("Server.Host", c.Server.Host)
	v.RangeInt("Server.Port", c.Server.Port, 1, 65535)
	v.MinDuration("Server.ReadTimeout", c.Server.ReadTimeout, time.Second)
	v.MinDuration("Server.WriteTimeout", c.Server.WriteTimeout, time.Second)
	v.MinDuration("Server.ShutdownTimeout", c.Server.ShutdownTimeout, time.Second)
	v.MinDuration("Server.AnalyzeTimeout", c.Server.AnalyzeTimeout, time.Second)

	v.OneOf("Logging.Level", c.Logging.Level, []string{"debug", "info", "warn", "error"})

	v.PositiveFloat("Layout.Width", c.Layout.Width)
	v.PositiveFloat("Layout.Height", c.Layout.Height)
	v.Custom("Layout.Padding", func() error {
		if c.Layout.Padding < 0 {
			return errors.New("padding must not be negative")
		}
		return nil
	})

	v.Positive("Analysis.MaxComponents", c.Analysis.MaxComponents)
	v.Positive("Analysis.MaxDependencies", c.Analysis.MaxDependencies)

	v.When(c.Auth.Enabled, func(v *validation.ConfigValidator) {
		v.Custom("Auth", func() error {
			if c.Auth.JWTSecret == "" && len(c.Auth.APIKeys) == 0 {
				return errors.New("auth enabled but no jwt_secret or api_keys configured")
			}
			return nil
		})
		v.When(c.Auth.JWTSecret != "", func(v *validation.ConfigValidator) {
			v.Custom("Auth.JWTSecret", func() error {
				if len(c.Auth.JWTSecret) < 32 {
					return errors.New("secret must be at least 32 characters")
				}
				return nil
			})
		})
	})

	return v.Validate()
}

// applyEnv overrides config fields from STRATEGY_-prefixed environment
// variables. Lists are comma-separated.
func (c *Config) applyEnv() {
	if v := os.Getenv("STRATEGY_HOST"); v != "" {
		c.Server.Host = v
	}
	c.Server.Port = envInt("STRATEGY_PORT", c.Server.Port)
	c.Server.ReadTimeout = envDuration("STRATEGY_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = envDuration("STRATEGY_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = envDuration("STRATEGY_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.AnalyzeTimeout = envDuration("STRATEGY_ANALYZE_TIMEOUT", c.Server.AnalyzeTimeout)
	if v := os.Getenv("STRATEGY_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitAndTrim(v, ",")
	}

	if v := os.Getenv("STRATEGY_AUTH_ENABLED"); v != "" {
		c.Auth.Enabled = v == "true"
	}
	if v := os.Getenv("STRATEGY_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("STRATEGY_API_KEYS"); v != "" {
		c.Auth.APIKeys = splitAndTrim(v, ",")
	}

	if v := os.Getenv("STRATEGY_CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("STRATEGY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	c.Analysis.MaxComponents = envInt("STRATEGY_MAX_COMPONENTS", c.Analysis.MaxComponents)
	c.Analysis.MaxDependencies = envInt("STRATEGY_MAX_DEPENDENCIES", c.Analysis.MaxDependencies)
}

// applyDefaults fills every unset field with its default value.
func (c *Config) applyDefaults() {
	c.Server.Host = validation.DefaultOr(c.Server.Host, DefaultHost)
	c.Server.Port = validation.DefaultOrInt(c.Server.Port, DefaultPort)
	c.Server.ReadTimeout = validation.DefaultOrDuration(c.Server.ReadTimeout, DefaultReadTimeout)
	c.Server.WriteTimeout = validation.DefaultOrDuration(c.Server.WriteTimeout, DefaultWriteTimeout)
	c.Server.ShutdownTimeout = validation.DefaultOrDuration(c.Server.ShutdownTimeout, DefaultShutdownTimeout)
	c.Server.AnalyzeTimeout = validation.DefaultOrDuration(c.Server.AnalyzeTimeout, DefaultAnalyzeTimeout)
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}

	lc := layout.DefaultLayoutConfig()
	c.Layout.Width = validation.DefaultOrFloat(c.Layout.Width, lc.Width)
	c.Layout.Height = validation.DefaultOrFloat(c.Layout.Height, lc.Height)
	c.Layout.Padding = validation.DefaultOrFloat(c.Layout.Padding, lc.Padding)

	c.Logging.Level = validation.DefaultOr(c.Logging.Level, DefaultLogLevel)

	c.Analysis.MaxComponents = validation.DefaultOrInt(c.Analysis.MaxComponents, validation.MaxComponents)
	c.Analysis.MaxDependencies = validation.DefaultOrInt(c.Analysis.MaxDependencies, validation.MaxDependencies)
}

// parseTimeout parses a duration string, treating empty as unset.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// envInt reads an integer environment variable, keeping the fallback on
// absence or parse failure.
func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envDuration reads a duration environment variable (e.g. "30s"), keeping
// the fallback on absence or parse failure.
func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// splitAndTrim splits a string and trims whitespace from each part.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
