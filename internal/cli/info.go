package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/ui"
)

type infoResult struct {
	summary     string
	description string
}

func (a *App) newInfoCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "info <package>",
		Short: "Show a package's summary and description from PyPI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd.Context(), args[0], raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the description without markdown rendering")
	return cmd
}

func (a *App) runInfo(ctx context.Context, name string, raw bool) error {
	done := make(chan infoResult, 1)
	a.newDispatcher().FetchFullAsync(name, func(summary, description string) {
		done <- infoResult{summary: summary, description: description}
	})

	var res infoResult
	err := a.withSpinner(ctx, "Fetching detailed description from PyPI...", func() error {
		select {
		case res = <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return err
	}

	a.output.Println("Package Details - %s", name)
	a.output.Println("%s", res.summary)
	a.output.Println("")

	description := res.description
	if !raw && !a.output.NoColor() {
		rendered, renderErr := ui.RenderMarkdown(description, 0)
		if renderErr != nil {
			a.debugf("markdown rendering failed: %v", renderErr)
		} else {
			description = rendered
		}
	}
	a.output.Println("%s", description)

	a.output.Success("Information updated from PyPI")
	return nil
}
