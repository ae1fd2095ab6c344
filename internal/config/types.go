package config

import "time"

const ConfigFile = "conda-env-detector.yml"
const AppDir = "conda-env-detector"
const DefaultRegistryURL = "https://pypi.org"
const DefaultTimeout = 5 * time.Second
const DefaultSummaryWidth = 100
const CurrentVersion = 1

// minSummaryWidth leaves room for the "..." truncation marker.
const minSummaryWidth = 4

// CondaConfig selects the conda executable used for discovery.
type CondaConfig struct {
	// Executable is a command name or path. Empty means $CONDA_EXE, then "conda".
	Executable string `yaml:"executable,omitempty"`
}

// RegistryConfig holds registry connection settings.
type RegistryConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DisplayConfig controls how package data is rendered.
type DisplayConfig struct {
	SummaryWidth int `yaml:"summary_width,omitempty"`
}
