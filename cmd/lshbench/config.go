package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/golsh/hyperplane"
)

// Config describes one benchmark run. Every field can be set from a YAML
// file and overridden by flags.
type Config struct {
	Dimension    int     `yaml:"dimension"`
	Points       int     `yaml:"points"`
	Queries      int     `yaml:"queries"`
	K            int     `yaml:"k"`
	Tables       []int   `yaml:"tables"`
	Bits         int     `yaml:"bits"`
	Seed         int64   `yaml:"seed"`
	Distribution string  `yaml:"distribution"`
	Clusters     int     `yaml:"clusters"`
	Spread       float64 `yaml:"spread"`
	Noise        float64 `yaml:"noise"`
	Workers      int     `yaml:"workers"`

	// QPS paces queries at this rate across all workers. 0 means unpaced.
	QPS float64 `yaml:"qps"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Dimension:    64,
		Points:       10000,
		Queries:      200,
		K:            10,
		Tables:       []int{1, 2, 4, 8, 16},
		Bits:         12,
		Seed:         1,
		Distribution: "gaussian",
		Clusters:     100,
		Spread:       0.05,
		Noise:        0.02,
		Workers:      1,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields the index does not validate itself.
func (c Config) Validate() error {
	if c.Points < 1 {
		return errors.New("points must be >= 1")
	}
	if c.Queries < 1 {
		return errors.New("queries must be >= 1")
	}
	if c.K < 1 {
		return errors.New("k must be >= 1")
	}
	if len(c.Tables) == 0 {
		return errors.New("at least one table count is required")
	}
	if c.Clusters < 1 {
		return errors.New("clusters must be >= 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be >= 1")
	}
	if c.QPS < 0 {
		return errors.New("qps must not be negative")
	}
	if _, err := hyperplane.ParseDistribution(c.Distribution); err != nil {
		return err
	}
	return nil
}
