// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration. Zero values fall back to
// the defaults, so a partial file only overrides what it names.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// TickHz is the engine tick rate.
	TickHz float64 `yaml:"tick_hz"`

	Fluid   FluidConfig   `yaml:"fluid"`
	Pontoon PontoonConfig `yaml:"pontoon"`

	// InitialPontoons and InitialItems pre-populate the barge on
	// startup.
	InitialPontoons int `yaml:"initial_pontoons"`
	InitialItems    int `yaml:"initial_items"`
}

// FluidConfig selects a fluid preset by name, with an optional
// explicit density override.
type FluidConfig struct {
	Name    string  `yaml:"name"`
	Density float64 `yaml:"density"`
}

// PontoonConfig carries the default geometry and weight for new
// pontoons.
type PontoonConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
	Weight float64 `yaml:"weight"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:          ":8080",
		TickHz:          20,
		Fluid:           FluidConfig{Name: "freshwater"},
		Pontoon:         PontoonConfig{Width: 20, Height: 5, Depth: 10, Weight: 50000},
		InitialPontoons: 1,
		InitialItems:    1,
	}
}

// Load reads a YAML configuration file on top of the defaults. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Listen == "" {
		cfg.Listen = Default().Listen
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = Default().TickHz
	}
	if cfg.InitialPontoons < 0 {
		cfg.InitialPontoons = 0
	}
	if cfg.InitialItems < 0 {
		cfg.InitialItems = 0
	}
	return cfg, nil
}
