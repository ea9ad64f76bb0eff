// Package config loads seqlabel's YAML settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the settings that shape how numbers are spliced into labels.
type Config struct {
	Separator    string `yaml:"separator"`     // between number and label text
	KeepExisting bool   `yaml:"keep_existing"` // leave existing numbers on rows with a blank token
	Transform    string `yaml:"transform"`     // JavaScript arrow function applied to each number
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{Separator: " "}
}

// Parse reads YAML on top of the defaults. Unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Separator == "" {
		cfg.Separator = " "
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path gives the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}
