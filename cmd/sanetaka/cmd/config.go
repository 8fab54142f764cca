package cmd

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/siglang/sanetaka/internal/errors"
)

// Config is the shape of the --config YAML file.
type Config struct {
	Color    errors.ColorMode `yaml:"color"`
	Builtins []string         `yaml:"builtins"`
	Preload  []string         `yaml:"preload"`
}

func defaultConfig() *Config {
	return &Config{Color: errors.ColorAuto}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Color == "" {
		cfg.Color = errors.ColorAuto
	}
	return cfg, nil
}
