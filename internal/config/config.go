// Package config provides runtime configuration for greeter.
// It uses Viper to load settings from files, environment variables and .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Frontend sources accepted by frontend_source.
const (
	SourceDir      = "dir"
	SourceEmbedded = "embedded"
)

// Config holds all runtime configuration for greeter.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	Port       int    `mapstructure:"port"`
	// Debug switches Gin to debug mode and enables the request log.
	Debug bool `mapstructure:"debug"`
	// TrustedProxies is handed to gin.Engine.SetTrustedProxies; empty trusts nobody.
	TrustedProxies  []string `mapstructure:"trusted_proxies"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds"`

	// ── Frontend ─────────────────────────────────────────────────────────────
	// FrontendDir is the on-disk static root. Empty means <executable dir>/../frontend.
	FrontendDir string `mapstructure:"frontend_dir"`
	// FrontendSource is "dir" (FrontendDir) or "embedded" (the webui package).
	FrontendSource string `mapstructure:"frontend_source"`
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.Port)
}

// ShutdownGrace returns the graceful shutdown budget.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Validate reports every invalid setting in one error.
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	switch c.FrontendSource {
	case SourceDir, SourceEmbedded:
	default:
		problems = append(problems, fmt.Sprintf("invalid frontend_source %q: use %q or %q", c.FrontendSource, SourceDir, SourceEmbedded))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown_timeout_seconds %d: must be positive", c.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Load reads config from file (./config.yaml or ~/.greeter/config.yaml)
// and falls back to defaults. A .env file in the working directory is
// loaded first; environment variables with prefix GREETER_ override file
// values, and a bare PORT is honoured for container platforms.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// --- Defaults ---
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("port", 5000)
	v.SetDefault("debug", false)
	v.SetDefault("trusted_proxies", []string{})
	v.SetDefault("shutdown_timeout_seconds", 5)
	v.SetDefault("frontend_dir", "")
	v.SetDefault("frontend_source", SourceDir)

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.greeter")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("GREETER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "GREETER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding port env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
