package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/exitcodes"
	"github.com/company/conda-env-detector/internal/ui"
)

func (a *App) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively pick an environment and inspect its packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd.Context())
		},
	}
}

func (a *App) runBrowse(ctx context.Context) error {
	if !a.interactive {
		return &ExitError{
			Code:    exitcodes.UsageError,
			Message: "browse needs an interactive terminal; use 'envs', 'packages' and 'info' instead",
		}
	}

	err := a.browse(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func (a *App) browse(ctx context.Context) error {
	envs, err := a.discover(ctx)
	if err != nil || len(envs) == 0 {
		return err
	}

	root, err := ui.SelectEnvironment(envs)
	if err != nil {
		return err
	}
	env, _ := detect.Find(envs, root)

	records, err := a.enumerate(ctx, env)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		a.output.Warning("No packages found in %s", env.Name)
		return nil
	}

	for {
		name, err := ui.SelectPackage(env.Name, records)
		if err != nil {
			return err
		}

		if err := a.runInfo(ctx, name, false); err != nil {
			return err
		}

		again, err := ui.Confirm("Inspect another package?")
		if err != nil || !again {
			return err
		}
	}
}
