// Package config loads optional defaults for the CLI from a YAML file.
// Flags always take precedence over file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not set
const DefaultPath = ".rtree.yaml"

// Valid values for the color setting
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings a user may predefine instead of passing flags
// on every invocation
type Config struct {
	// IgnorePattern is the default pipe-separated ignore pattern
	IgnorePattern string `yaml:"ignore_pattern"`

	// DirsFirst sorts directories before files by default
	DirsFirst bool `yaml:"dirs_first"`

	// Color is the default color mode: auto, always, or never
	Color string `yaml:"color"`

	// NoReport suppresses the closing "N directories, M files" line
	NoReport bool `yaml:"no_report"`
}

// DefaultConfig returns the settings used when no config file exists
func DefaultConfig() *Config {
	return &Config{
		Color: ColorAuto,
	}
}

// LoadConfig reads the config file at path. A missing file is not an error
// and yields the defaults; a file that cannot be read or parsed is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if err := ValidateColorMode(cfg.Color); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateColorMode rejects color settings other than auto, always, never
func ValidateColorMode(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (expected auto, always, or never)", mode)
	}
}
