package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dd0wney/cluso-strategy/pkg/layout"
)

// strategyEnvVars lists every environment variable Load consults.
var strategyEnvVars = []string{
	"STRATEGY_HOST",
	"STRATEGY_PORT",
	"STRATEGY_READ_TIMEOUT",
	"STRATEGY_WRITE_TIMEOUT",
	"STRATEGY_SHUTDOWN_TIMEOUT",
	"STRATEGY_ANALYZE_TIMEOUT",
	"STRATEGY_CORS_ORIGINS",
	"STRATEGY_AUTH_ENABLED",
	"STRATEGY_JWT_SECRET",
	"STRATEGY_API_KEYS",
	"STRATEGY_CATALOG_PATH",
	"STRATEGY_LOG_LEVEL",
	"STRATEGY_MAX_COMPONENTS",
	"STRATEGY_MAX_DEPENDENCIES",
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Expected read timeout 15s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Expected write timeout 30s, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected shutdown timeout 30s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.AnalyzeTimeout != 30*time.Second {
		t.Errorf("Expected analyze timeout 30s, got %v", cfg.Server.AnalyzeTimeout)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Expected default CORS origins [*], got %v", cfg.Server.CORSOrigins)
	}
	if cfg.Auth.Enabled {
		t.Error("Expected auth disabled by default")
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Expected empty catalog path, got %s", cfg.Catalog.Path)
	}
	if cfg.Layout.Width != 800 || cfg.Layout.Height != 600 || cfg.Layout.Padding != 50 {
		t.Errorf("Expected layout defaults 800x600 pad 50, got %+v", cfg.Layout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Analysis.MaxComponents != 500 {
		t.Errorf("Expected max components 500, got %d", cfg.Analysis.MaxComponents)
	}
	if cfg.Analysis.MaxDependencies != 2000 {
		t.Errorf("Expected max dependencies 2000, got %d", cfg.Analysis.MaxDependencies)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	clearStrategyEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load with no file and no env should equal defaults, got %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:    "host and port from environment",
			envVars: map[string]string{"STRATEGY_HOST": "10.0.0.5", "STRATEGY_PORT": "9999"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Host != "10.0.0.5" {
					t.Errorf("Expected host 10.0.0.5, got %s", cfg.Server.Host)
				}
				if cfg.Server.Port != 9999 {
					t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
				}
			},
		},
		{
			name:    "malformed port keeps default",
			envVars: map[string]string{"STRATEGY_PORT": "not-a-number"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.Port != 8080 {
					t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
				}
			},
		},
		{
			name: "timeouts from environment",
			envVars: map[string]string{
				"STRATEGY_READ_TIMEOUT":    "45s",
				"STRATEGY_ANALYZE_TIMEOUT": "2m",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.ReadTimeout != 45*time.Second {
					t.Errorf("Expected read timeout 45s, got %v", cfg.Server.ReadTimeout)
				}
				if cfg.Server.AnalyzeTimeout != 2*time.Minute {
					t.Errorf("Expected analyze timeout 2m, got %v", cfg.Server.AnalyzeTimeout)
				}
				if cfg.Server.WriteTimeout != 30*time.Second {
					t.Errorf("Expected untouched write timeout 30s, got %v", cfg.Server.WriteTimeout)
				}
			},
		},
		{
			name:    "CORS origins parsed as comma list",
			envVars: map[string]string{"STRATEGY_CORS_ORIGINS": "https://a.example.com, https://b.example.com"},
			check: func(t *testing.T, cfg *Config) {
				want := []string{"https://a.example.com", "https://b.example.com"}
				if !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
					t.Errorf("Expected origins %v, got %v", want, cfg.Server.CORSOrigins)
				}
			},
		},
		{
			name: "auth enabled with API keys",
			envVars: map[string]string{
				"STRATEGY_AUTH_ENABLED": "true",
				"STRATEGY_API_KEYS":     "$2a$10$firsthash,$2a$10$secondhash",
			},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Auth.Enabled {
					t.Error("Expected auth enabled")
				}
				if len(cfg.Auth.APIKeys) != 2 {
					t.Errorf("Expected 2 API keys, got %d", len(cfg.Auth.APIKeys))
				}
			},
		},
		{
			name:    "log level and catalog path",
			envVars: map[string]string{"STRATEGY_LOG_LEVEL": "debug", "STRATEGY_CATALOG_PATH": "/etc/strategy/catalog.yaml"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Expected level debug, got %s", cfg.Logging.Level)
				}
				if cfg.Catalog.Path != "/etc/strategy/catalog.yaml" {
					t.Errorf("Expected catalog path override, got %s", cfg.Catalog.Path)
				}
			},
		},
		{
			name:    "analysis caps from environment",
			envVars: map[string]string{"STRATEGY_MAX_COMPONENTS": "100", "STRATEGY_MAX_DEPENDENCIES": "400"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Analysis.MaxComponents != 100 {
					t.Errorf("Expected max components 100, got %d", cfg.Analysis.MaxComponents)
				}
				if cfg.Analysis.MaxDependencies != 400 {
					t.Errorf("Expected max dependencies 400, got %d", cfg.Analysis.MaxDependencies)
				}
			},
		},
		{
			name:        "auth enabled without credentials fails",
			envVars:     map[string]string{"STRATEGY_AUTH_ENABLED": "true"},
			wantErr:     true,
			errContains: "no jwt_secret or api_keys",
		},
		{
			name: "auth enabled with short secret fails",
			envVars: map[string]string{
				"STRATEGY_AUTH_ENABLED": "true",
				"STRATEGY_JWT_SECRET":   "tooshort",
			},
			wantErr:     true,
			errContains: "at least 32 characters",
		},
		{
			name:        "unknown log level fails",
			envVars:     map[string]string{"STRATEGY_LOG_LEVEL": "verbose"},
			wantErr:     true,
			errContains: "Logging.Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearStrategyEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load("")

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	clearStrategyEnv(t)

	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5s
  cors_origins:
    - https://app.example.com
auth:
  enabled: true
  jwt_secret: 0123456789abcdef0123456789abcdef
layout:
  width: 1000
logging:
  level: debug
analysis:
  max_components: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected host 127.0.0.1, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	// Unset file fields fall back to defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("Expected file CORS origins, got %v", cfg.Server.CORSOrigins)
	}
	if !cfg.Auth.Enabled {
		t.Error("Expected auth enabled from file")
	}
	if cfg.Layout.Width != 1000 || cfg.Layout.Height != 600 {
		t.Errorf("Expected width 1000 with default height, got %+v", cfg.Layout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Analysis.MaxComponents != 50 || cfg.Analysis.MaxDependencies != 2000 {
		t.Errorf("Expected caps 50/2000, got %+v", cfg.Analysis)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearStrategyEnv(t)

	path := writeConfigFile(t, `
server:
  port: 9090
`)
	t.Setenv("STRATEGY_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Environment should override file, got port %d", cfg.Server.Port)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearStrategyEnv(t)

	tests := []struct {
		name        string
		path        string
		contents    string
		errContains string
	}{
		{
			name:        "missing file",
			path:        filepath.Join(t.TempDir(), "nope.yaml"),
			errContains: "read config",
		},
		{
			name:        "malformed yaml",
			contents:    "server:\n  port: [unclosed",
			errContains: "parse config",
		},
		{
			name:        "bad duration string",
			contents:    "server:\n  read_timeout: fast\n",
			errContains: "read_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeConfigFile(t, tt.contents)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:        "port zero",
			mutate:      func(c *Config) { c.Server.Port = 0 },
			wantErr:     true,
			errContains: "Server.Port",
		},
		{
			name:        "port too high",
			mutate:      func(c *Config) { c.Server.Port = 70000 },
			wantErr:     true,
			errContains: "Server.Port",
		},
		{
			name:        "empty host",
			mutate:      func(c *Config) { c.Server.Host = "" },
			wantErr:     true,
			errContains: "Server.Host",
		},
		{
			name:        "read timeout below minimum",
			mutate:      func(c *Config) { c.Server.ReadTimeout = 500 * time.Millisecond },
			wantErr:     true,
			errContains: "Server.ReadTimeout",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			wantErr:     true,
			errContains: "Logging.Level",
		},
		{
			name:        "zero canvas width",
			mutate:      func(c *Config) { c.Layout.Width = 0 },
			wantErr:     true,
			errContains: "Layout.Width",
		},
		{
			name:        "negative padding",
			mutate:      func(c *Config) { c.Layout.Padding = -5 },
			wantErr:     true,
			errContains: "Layout.Padding",
		},
		{
			name:        "zero component cap",
			mutate:      func(c *Config) { c.Analysis.MaxComponents = 0 },
			wantErr:     true,
			errContains: "Analysis.MaxComponents",
		},
		{
			name:        "auth enabled without credentials",
			mutate:      func(c *Config) { c.Auth.Enabled = true },
			wantErr:     true,
			errContains: "no jwt_secret or api_keys",
		},
		{
			name: "auth with short secret",
			mutate: func(c *Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = "short"
			},
			wantErr:     true,
			errContains: "at least 32 characters",
		},
		{
			name: "auth with api keys only",
			mutate: func(c *Config) {
				c.Auth.Enabled = true
				c.Auth.APIKeys = []string{"$2a$10$somehash"}
			},
		},
		{
			name: "auth with full length secret",
			mutate: func(c *Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = strings.Repeat("s", 32)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"localhost", 3000, "localhost:3000"},
		{"10.1.2.3", 443, "10.1.2.3:443"},
	}

	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr(%s, %d) = %s, want %s", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestLayoutDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.LayoutDefaults(); got != layout.DefaultLayoutConfig() {
		t.Errorf("Default layout section should match the geometry defaults, got %+v", got)
	}

	cfg.Layout.Width = 1200
	if got := cfg.LayoutDefaults(); got.Width != 1200 {
		t.Errorf("Expected width override to propagate, got %+v", got)
	}
}

// clearStrategyEnv neutralizes every STRATEGY_ variable for the test.
// Load treats empty values as unset, and t.Setenv restores the originals.
func clearStrategyEnv(t *testing.T) {
	t.Helper()
	for _, key := range strategyEnvVars {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}
