// Package config defines the startup configuration of the bridge. All
// values come from the environment; an unset variable falls back to its
// default. Nothing here is runtime-mutable.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
	EnvTesting     Environment = "testing"
)

func (e Environment) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvProduction, EnvTesting:
		return true
	}
	return false
}

type Config struct {
	Environment Environment `env:"BRIDGE_ENVIRONMENT" envDefault:"production"`

	Server      Server
	Institution Institution
	Upstream    Upstream
}

type Server struct {
	Address           string        `env:"BRIDGE_ADDRESS" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"BRIDGE_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"BRIDGE_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Institution is the deploy-time identity shown on the bridge's pages.
type Institution struct {
	Name string `env:"BRIDGE_INSTITUTION_NAME" envDefault:"Example University"`
}

// Upstream is the fixed API host the pass-through proxy forwards to.
type Upstream struct {
	APIBaseURL string `env:"BRIDGE_UPSTREAM_API_URL" envDefault:"https://api.example.com"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if !cfg.Environment.IsValid() {
		return nil, fmt.Errorf("unknown environment %q", cfg.Environment)
	}

	if _, err := url.ParseRequestURI(cfg.Upstream.APIBaseURL); err != nil {
		return nil, fmt.Errorf("invalid upstream API URL %q: %w", cfg.Upstream.APIBaseURL, err)
	}

	return &cfg, nil
}
