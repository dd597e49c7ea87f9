package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/MHmorgan/remscan/grammar"
	"github.com/MHmorgan/remscan/logger"
	"github.com/MHmorgan/remscan/scanner"
)

// DefaultPath is the config file looked for in the working directory.
const DefaultPath = ".remscan.yaml"

var verbPattern = regexp.MustCompile(`^[A-Z]+$`)

// Config represents remscan configuration options
type Config struct {
	// Verbs are the reminder verbs, e.g. TODO. Each must be uppercase letters.
	Verbs []string `yaml:"verbs"`

	// Workers is the number of files scanned concurrently
	Workers int `yaml:"workers"`

	// Hidden includes hidden files and directories
	Hidden bool `yaml:"hidden"`

	// NoIgnore disables .gitignore and .ignore handling
	NoIgnore bool `yaml:"no_ignore"`

	// Exclude holds extra gitignore-style patterns to skip
	Exclude []string `yaml:"exclude"`

	// Languages maps extensions (".foo") or file names ("Justfile") to
	// built-in grammar names (see grammar.Names)
	Languages map[string]string `yaml:"languages"`

	// LogLevel sets the diagnostics verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Color is auto, always or never
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Verbs:    scanner.DefaultVerbs(),
		Workers:  runtime.NumCPU(),
		LogLevel: "warn",
		Color:    "auto",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed or invalid, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if len(c.Verbs) == 0 {
		return errors.New("verbs must not be empty")
	}
	for _, v := range c.Verbs {
		if !verbPattern.MatchString(v) {
			return fmt.Errorf("verb %q must be uppercase letters only", v)
		}
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}

	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Registry returns the built-in grammar table extended with the
// configured languages.
func (c *Config) Registry() (*grammar.Registry, error) {
	reg := grammar.Default()
	for key, name := range c.Languages {
		if err := reg.Register(key, name); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
