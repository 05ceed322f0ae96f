// Package config provides configuration loading and management for fuzzyheater.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrhapile/fuzzy-heater/pkg/rules"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

// Config represents the complete fuzzyheater configuration
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig selects and tunes the rule base
type EngineConfig struct {
	// Preset is the compiled-in rule base (gaussian, triangular)
	Preset string `yaml:"preset"`
	// Epsilon is the firing strength at or below which a rule is not fired
	Epsilon float64 `yaml:"epsilon"`
}

// InputConfig bounds the temperatures accepted from the user
type InputConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	// AllowCooling accepts a desired temperature below the current one
	AllowCooling bool `yaml:"allow_cooling"`
}

// OutputConfig configures result rendering
type OutputConfig struct {
	// Color enables lipgloss styling of terminal output
	Color bool `yaml:"color"`
	// PlotDir is where membership plots are written
	PlotDir string `yaml:"plot_dir"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Preset:  rules.DefaultPreset,
			Epsilon: types.DefaultEpsilon,
		},
		Input: InputConfig{
			Min: rules.MinTemp,
			Max: rules.MaxTemp,
		},
		Output: OutputConfig{
			Color:   true,
			PlotDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := rules.Lookup(c.Engine.Preset); err != nil {
		return fmt.Errorf("engine.preset: %w", err)
	}
	if c.Engine.Epsilon < 0 || c.Engine.Epsilon >= 1 {
		return fmt.Errorf("engine.epsilon must be in [0, 1)")
	}
	if c.Input.Min >= c.Input.Max {
		return fmt.Errorf("input.min must be less than input.max")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one. Fields of other that differ from
// DefaultConfig take precedence, since loaded files start from the defaults.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	def := DefaultConfig()

	// Engine
	if other.Engine.Preset != "" && other.Engine.Preset != def.Engine.Preset {
		c.Engine.Preset = other.Engine.Preset
	}
	if other.Engine.Epsilon != def.Engine.Epsilon {
		c.Engine.Epsilon = other.Engine.Epsilon
	}

	// Input
	if other.Input.Min != def.Input.Min || other.Input.Max != def.Input.Max {
		c.Input.Min = other.Input.Min
		c.Input.Max = other.Input.Max
	}
	if other.Input.AllowCooling {
		c.Input.AllowCooling = true
	}

	// Output
	if other.Output.Color != def.Output.Color {
		c.Output.Color = other.Output.Color
	}
	if other.Output.PlotDir != "" && other.Output.PlotDir != def.Output.PlotDir {
		c.Output.PlotDir = other.Output.PlotDir
	}

	// Log
	if other.Log.Level != "" && other.Log.Level != def.Log.Level {
		c.Log.Level = other.Log.Level
	}
}

// CheckReading validates a current/desired temperature pair against the input bounds.
// The engine evaluates any finite value; rejecting implausible readings is the caller's job.
func (c *Config) CheckReading(current, desired float64) error {
	for _, r := range []struct {
		name  string
		value float64
	}{{"current", current}, {"desired", desired}} {
		if !(r.value >= c.Input.Min && r.value <= c.Input.Max) {
			return fmt.Errorf("%s temperature %.2f must be between %.0f and %.0f", r.name, r.value, c.Input.Min, c.Input.Max)
		}
	}
	if !c.Input.AllowCooling && desired < current {
		return fmt.Errorf("desired temperature %.2f must be greater than or equal to current %.2f", desired, current)
	}
	return nil
}
