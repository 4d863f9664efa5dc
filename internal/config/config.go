package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/eulerlabs/euler/internal/weights"
)

// Config is the operator-facing configuration surface: strategy selection,
// the enabled indicator set, static weight tables, and the optional
// broadcast/server/store integrations.
type Config struct {
	Strategy string `yaml:"strategy" validate:"required"`

	Indicators struct {
		Enabled []string           `yaml:"enabled"`
		Values  map[string]float64 `yaml:"values"` // fixture raw values for the static feed
	} `yaml:"indicators"`

	StaticWeights map[string]float64 `yaml:"static_weights"`

	Monitor struct {
		Interval time.Duration `yaml:"interval" validate:"min=0"`
	} `yaml:"monitor"`

	Broadcast struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host" validate:"required_with=Enabled"`
		Port    int    `yaml:"port" validate:"gte=0,lte=65535"`
	} `yaml:"broadcast"`

	Server struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"server"`

	Store struct {
		Enabled bool   `yaml:"enabled"`
		DSN     string `yaml:"dsn"`
	} `yaml:"store"`
}

// Default returns the shipped configuration: statistical-dynamic weighting,
// the canonical indicator set, and all integrations off.
func Default() *Config {
	cfg := &Config{Strategy: "statistical_dynamic"}
	cfg.Monitor.Interval = time.Minute
	cfg.Broadcast.Host = "127.0.0.1"
	cfg.Broadcast.Port = 5001
	cfg.Server.Addr = ":9180"
	cfg.Indicators.Values = map[string]float64{
		"^VIX":              25.5,
		"^SKEW":             125.0,
		"Put/Call Ratio":    0.8,
		"Buffett Indicator": 150.0,
	}
	return cfg
}

// Load reads a YAML file over the defaults and validates the result.
// Configuration problems are programmer/operator mistakes and fail fast.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints and resolves the strategy name.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if _, err := weights.ParseMethod(c.Strategy); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	for name, w := range c.StaticWeights {
		if w < 0 {
			return fmt.Errorf("config validation: static weight for %q is negative", name)
		}
	}
	if c.Store.Enabled && c.Store.DSN == "" {
		return fmt.Errorf("config validation: store enabled without dsn")
	}
	return nil
}

// Method resolves the configured strategy. Validate has already guaranteed
// the name parses.
func (c *Config) Method() weights.Method {
	m, _ := weights.ParseMethod(c.Strategy)
	return m
}
