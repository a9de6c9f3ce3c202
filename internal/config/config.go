package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies    = 30
	DefaultDt        = 3600.0
	DefaultTotalTime = 36000.0
	DefaultOutput    = "simulation_output.txt"
	DefaultMode      = "directed"
	// DefaultEscapeRadius is 50 AU.
	DefaultEscapeRadius = 50 * 1.496e11
)

type Config struct {
	Bodies       int     `yaml:"bodies"`
	Dt           float64 `yaml:"dt"`
	TotalTime    float64 `yaml:"total_time"`
	Seed         int64   `yaml:"seed"`
	Output       string  `yaml:"output"`
	Mode         string  `yaml:"mode"`
	Catalog      string  `yaml:"catalog,omitempty"`
	StrictTrace  bool    `yaml:"strict_trace"`
	EscapeRadius float64 `yaml:"escape_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:       DefaultBodies,
		Dt:           DefaultDt,
		TotalTime:    DefaultTotalTime,
		Output:       DefaultOutput,
		Mode:         DefaultMode,
		EscapeRadius: DefaultEscapeRadius,
	}
}

func Load(path string) (*Config, error) {
	return LoadFrom(path, DefaultConfig())
}

// LoadFrom reads path over a copy of base, so keys missing from the file
// keep base's values.
func LoadFrom(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the driver must not start with.
func (c *Config) Validate() error {
	if c.Bodies < 0 {
		return dynamo.InvalidConfig("bodies", c.Bodies, "must not be negative")
	}
	if !positiveFinite(c.Dt) {
		return dynamo.InvalidConfig("dt", c.Dt, "must be a positive finite number of seconds")
	}
	if !positiveFinite(c.TotalTime) {
		return dynamo.InvalidConfig("total_time", c.TotalTime, "must be a positive finite number of seconds")
	}
	if _, err := physics.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.EscapeRadius < 0 || math.IsNaN(c.EscapeRadius) {
		return dynamo.InvalidConfig("escape_radius", c.EscapeRadius, "must not be negative")
	}
	return nil
}

func (c *Config) EngineMode() physics.Mode {
	mode, _ := physics.ParseMode(c.Mode)
	return mode
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
