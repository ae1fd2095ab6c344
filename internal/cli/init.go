package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/config"
	"github.com/company/conda-env-detector/internal/exitcodes"
)

func (a *App) newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Long:  "Creates " + config.ConfigFile + " in the user config directory (or --config), recording --conda and --registry if given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (a *App) runInit(force bool) error {
	path, err := a.getConfigPath()
	if err != nil {
		return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}

	if config.ConfigExists(path) && !force {
		a.output.Warning("Config already exists at %s", path)
		return &ExitError{Code: exitcodes.ConfigError, Message: "use --force to overwrite the existing config"}
	}

	cfg := config.Default()
	cfg.Conda.Executable = a.condaExe
	if a.registryURL != "" {
		cfg.Registry.URL = a.registryURL
	}

	if err := config.SaveConfig(path, cfg); err != nil {
		return &ExitError{Code: exitcodes.ConfigError, Message: fmt.Sprintf("writing config: %v", err)}
	}

	a.config = cfg
	a.output.Success("Wrote %s", path)
	return nil
}
