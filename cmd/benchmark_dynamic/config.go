package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

type benchmarkConfig struct {
	Repeats   int                   `yaml:"repeats"`
	Scenarios []benchmarkTestConfig `yaml:"scenarios"`
}

type benchmarkTestConfig struct {
	Name           string  `yaml:"name"`            // friendly name for the test, should be unique
	Width          int     `yaml:"width"`           // width of dependency graph to construct
	TotalLayers    int     `yaml:"layers"`          // depth of dependency graph to construct
	StaticFraction float64 `yaml:"static_fraction"` // fraction of nodes that always read all their sources
	NSources       int     `yaml:"sources"`         // number of sources read by each node
	ReadFraction   float64 `yaml:"read_fraction"`   // fraction of leaves read each iteration
	Iterations     int64   `yaml:"iterations"`
}

func loadConfig(path string) (*benchmarkConfig, error) {
	data := defaultScenarios
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		data = b
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*benchmarkConfig, error) {
	cfg := &benchmarkConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Repeats < 1 {
		cfg.Repeats = 1
	}
	if len(cfg.Scenarios) == 0 {
		return nil, fmt.Errorf("config has no scenarios")
	}
	for i, sc := range cfg.Scenarios {
		if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%q): %w", i, sc.Name, err)
		}
	}
	return cfg, nil
}

func (c benchmarkTestConfig) validate() error {
	switch {
	case c.Width < 1:
		return fmt.Errorf("width must be at least 1")
	case c.TotalLayers < 2:
		return fmt.Errorf("layers must be at least 2")
	case c.NSources < 1:
		return fmt.Errorf("sources must be at least 1")
	case c.StaticFraction < 0 || c.StaticFraction > 1:
		return fmt.Errorf("static_fraction must be within [0, 1]")
	case c.ReadFraction < 0 || c.ReadFraction > 1:
		return fmt.Errorf("read_fraction must be within [0, 1]")
	case c.Iterations < 1:
		return fmt.Errorf("iterations must be at least 1")
	}
	return nil
}
