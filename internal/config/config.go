// Package config defines the YAML run configuration for the CLI: model and
// method selection, stepping parameters, and named presets.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTol      = 1e-6
)

type Config struct {
	Model      string    `yaml:"model" validate:"required"`
	Method     string    `yaml:"method" validate:"required"`
	Dt         float64   `yaml:"dt" validate:"gt=0"`
	Duration   float64   `yaml:"duration" validate:"gt=0"`
	Adaptive   bool      `yaml:"adaptive"`
	Tolerance  float64   `yaml:"tolerance" validate:"gte=0"`
	MinStep    float64   `yaml:"min_step" validate:"gte=0"`
	MaxRetries int       `yaml:"max_retries" validate:"gte=0"`
	InitState  []float64 `yaml:"init_state"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     "pendulum",
		Method:    "rk4",
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Tolerance: DefaultTol,
	}
}

var validate = validator.New()

// Validate checks field bounds plus the cross-field rule that adaptive runs
// need a positive tolerance.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("config: adaptive runs need a positive tolerance")
	}
	return nil
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
