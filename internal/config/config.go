package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the conda-env-detector.yml file.
type Config struct {
	Version  int            `yaml:"version"`
	Conda    CondaConfig    `yaml:"conda"`
	Registry RegistryConfig `yaml:"registry"`
	Display  DisplayConfig  `yaml:"display"`
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{Version: CurrentVersion}
	applyDefaults(c)
	return c
}

// DefaultPath returns the config file location under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// ConfigExists checks whether a config file exists at path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: run 'conda-env-detector init' first")
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&c)

	if err := ValidateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// SaveConfig writes the config file to path, creating its directory.
func SaveConfig(path string, c *Config) error {
	applyDefaults(c)

	if err := ValidateConfig(c); err != nil {
		return err
	}

	content, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

// ValidateConfig checks that a Config struct has usable values.
func ValidateConfig(c *Config) error {
	if c.Version < 1 {
		return fmt.Errorf("invalid config version: %d", c.Version)
	}
	if c.Registry.URL == "" {
		return fmt.Errorf("registry url is required")
	}
	u, err := url.Parse(c.Registry.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid registry url: %q", c.Registry.URL)
	}
	if c.Registry.Timeout < 0 {
		return fmt.Errorf("invalid registry timeout: %s", c.Registry.Timeout)
	}
	if c.Display.SummaryWidth < minSummaryWidth {
		return fmt.Errorf("summary_width must be at least %d, got %d", minSummaryWidth, c.Display.SummaryWidth)
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.Registry.URL == "" {
		c.Registry.URL = DefaultRegistryURL
	}
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = DefaultTimeout
	}
	if c.Display.SummaryWidth == 0 {
		c.Display.SummaryWidth = DefaultSummaryWidth
	}
}
