package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/packages"
)

// IsCI returns true if running in a CI environment.
func IsCI() bool {
	return isTruthy(os.Getenv("CI")) ||
		isTruthy(os.Getenv("CONDA_ENV_DETECTOR_CI")) ||
		isTruthy(os.Getenv("GITHUB_ACTIONS")) ||
		isTruthy(os.Getenv("GITLAB_CI"))
}

func isTruthy(v string) bool {
	return v != "" && v != "false" && v != "0"
}

// EnvironmentOptions builds select options labelled "name  (path)", valued by root path.
func EnvironmentOptions(envs []detect.Environment) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(envs))
	for _, env := range envs {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  (%s)", env.Name, env.RootPath), env.RootPath))
	}
	return options
}

// PackageOptions builds select options labelled "name version", valued by name.
func PackageOptions(records []packages.Record) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(records))
	for _, r := range records {
		options = append(options, huh.NewOption(r.Name+" "+r.Version, r.Name))
	}
	return options
}

// SelectEnvironment prompts the user to pick an environment and returns its root path.
func SelectEnvironment(envs []detect.Environment) (string, error) {
	var selected string
	err := huh.NewSelect[string]().
		Title("Which environment do you want to inspect?").
		Options(EnvironmentOptions(envs)...).
		Value(&selected).
		Run()
	return selected, err
}

// SelectPackage prompts the user to pick a package and returns its name.
func SelectPackage(envName string, records []packages.Record) (string, error) {
	var selected string
	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("Packages in %s", envName)).
		Description("Pick a package to fetch its details from PyPI.").
		Options(PackageOptions(records)...).
		Height(15).
		Value(&selected).
		Run()
	return selected, err
}

// Confirm prompts the user for a yes/no confirmation.
func Confirm(title string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	return confirmed, err
}
