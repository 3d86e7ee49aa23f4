package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mcncl/jdiff/internal/errors"
	"github.com/mcncl/jdiff/internal/position"
	"gopkg.in/yaml.v3"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete configuration for jdiff
type Config struct {
	Output    OutputConfig    `yaml:"output" toml:"output"`
	Markers   MarkersConfig   `yaml:"markers" toml:"markers"`
	Positions PositionsConfig `yaml:"positions" toml:"positions"`
	Dev       DevConfig       `yaml:"dev" toml:"dev"`
}

// OutputConfig controls how the report is rendered
type OutputConfig struct {
	Color         string `yaml:"color" toml:"color"`
	ShowValues    bool   `yaml:"show_values" toml:"show_values"`
	ShowUnchanged bool   `yaml:"show_unchanged" toml:"show_unchanged"`
	Summary       bool   `yaml:"summary" toml:"summary"`
	Indent        int    `yaml:"indent" toml:"indent"`
}

// MarkersConfig holds the prefixes printed in front of keys when color is off
type MarkersConfig struct {
	Removed   string `yaml:"removed" toml:"removed"`
	Added     string `yaml:"added" toml:"added"`
	Changed   string `yaml:"changed" toml:"changed"`
	Unchanged string `yaml:"unchanged" toml:"unchanged"`
}

// PositionsConfig controls how top-level keys are located for ordering
type PositionsConfig struct {
	Strategy string `yaml:"strategy" toml:"strategy"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Color:         ColorAuto,
			ShowValues:    false,
			ShowUnchanged: false,
			Summary:       true,
			Indent:        2,
		},
		Markers: MarkersConfig{
			Removed:   "-",
			Added:     "+",
			Changed:   "~",
			Unchanged: " ",
		},
		Positions: PositionsConfig{
			Strategy: string(position.StrategyText),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file, or a TOML file when the
// path ends in .toml
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".jdiff.yml", ".jdiff.yaml", ".jdiff.toml", "jdiff.yml", "jdiff.yaml", "jdiff.toml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks enumerated settings and numeric ranges
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode '%s' (want auto, always or never): %w", c.Output.Color, errors.ErrInvalidOption)
	}

	if !slices.Contains(position.Strategies(), position.Strategy(c.Positions.Strategy)) {
		names := make([]string, 0, len(position.Strategies()))
		for _, s := range position.Strategies() {
			names = append(names, string(s))
		}
		return fmt.Errorf("invalid position strategy '%s' (want %s): %w",
			c.Positions.Strategy, strings.Join(names, " or "), errors.ErrInvalidOption)
	}

	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d: %w", c.Output.Indent, errors.ErrInvalidOption)
	}

	return nil
}

// IndentUnit returns the string used for one level of nesting
func (c *Config) IndentUnit() string {
	return strings.Repeat(" ", c.Output.Indent)
}

// CLIOverrides holds the values given on the command line. Empty strings and
// false booleans leave the config file value in place.
type CLIOverrides struct {
	Color      string
	Positions  string
	ShowValues bool
	Unchanged  bool
	NoSummary  bool
	Debug      bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Color != "" {
		cfg.Output.Color = cli.Color
	}
	if cli.Positions != "" {
		cfg.Positions.Strategy = cli.Positions
	}
	// Boolean flags can only switch features on
	if cli.ShowValues {
		cfg.Output.ShowValues = true
	}
	if cli.Unchanged {
		cfg.Output.ShowUnchanged = true
	}
	if cli.NoSummary {
		cfg.Output.Summary = false
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
