package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/exitcodes"
)

func (a *App) newEnvsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List Conda environments",
		Long:  "Runs 'conda env list' and shows every environment with its root path. The base environment comes first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEnvs(cmd.Context())
		},
	}
}

func (a *App) runEnvs(ctx context.Context) error {
	envs, err := a.discover(ctx)
	if err != nil {
		return err
	}
	if len(envs) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(envs))
	for _, env := range envs {
		rows = append(rows, []string{env.Name, env.RootPath})
	}
	a.output.Table([]string{"Environment", "Path"}, rows)

	a.output.Println("")
	a.output.Println("%d environments (via %s)", len(envs), a.getCondaExecutable())
	return nil
}

// discover lists environments and reports failures the way the user sees
// them: a notice, then an ExitError. Zero environments is not an error; it
// prints a notice and returns an empty list.
func (a *App) discover(ctx context.Context) ([]detect.Environment, error) {
	var envs []detect.Environment
	err := a.withSpinner(ctx, "Detecting Conda environments...", func() error {
		var discoverErr error
		envs, discoverErr = a.newDiscoverer().Environments(ctx)
		return discoverErr
	})

	if errors.Is(err, detect.ErrNoEnvironments) {
		a.output.Notice("No Conda Environments Found",
			"No Conda environments detected. Please ensure Conda is properly installed and environment variables are set.")
		return nil, nil
	}

	var discErr *detect.DiscoveryError
	if errors.As(err, &discErr) {
		a.output.Notice("Failed to Load Environments",
			fmt.Sprintf("Unable to load Conda environment list: %s: %v\n\nPlease ensure Conda is properly installed and accessible from command line.", discErr.Op, discErr.Err))
		return nil, &ExitError{Code: exitcodes.DiscoveryError, Message: "environment discovery failed"}
	}
	if err != nil {
		return nil, err
	}

	a.debugf("discovered %d environments", len(envs))
	return envs, nil
}

// resolveEnvironment finds an environment by name or root path. An existing
// directory is accepted as a root without running conda.
func (a *App) resolveEnvironment(ctx context.Context, key string) (detect.Environment, error) {
	if info, err := os.Stat(key); err == nil && info.IsDir() {
		return detect.Environment{Name: detect.DeriveName(key), RootPath: key}, nil
	}

	envs, err := a.discover(ctx)
	if err != nil {
		return detect.Environment{}, err
	}

	env, ok := detect.Find(envs, key)
	if !ok {
		return detect.Environment{}, &ExitError{
			Code:    exitcodes.UsageError,
			Message: fmt.Sprintf("environment %q not found; run 'conda-env-detector envs' to list them", key),
		}
	}
	return env, nil
}
