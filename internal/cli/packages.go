package cli

import (
	"context"
	"sort"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/packages"
)

const loadingSummary = "Loading..."

type packagesOptions struct {
	summaries bool
	filter    string
}

func (a *App) newPackagesCmd() *cobra.Command {
	var opts packagesOptions

	cmd := &cobra.Command{
		Use:   "packages <environment>",
		Short: "List the packages installed in an environment",
		Long: "Lists conda-meta and pip packages for an environment given by name or root path.\n" +
			"When both report a package, the conda-meta version is shown.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPackages(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.summaries, "summaries", "s", false, "fetch a one-line summary for each package from PyPI")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "only show packages whose name fuzzy-matches this term")

	return cmd
}

func (a *App) runPackages(ctx context.Context, key string, opts packagesOptions) error {
	env, err := a.resolveEnvironment(ctx, key)
	if err != nil {
		return err
	}

	all, err := a.enumerate(ctx, env)
	if err != nil {
		return err
	}

	records := filterRecords(all, opts.filter)
	if len(records) == 0 {
		if opts.filter != "" {
			a.output.Info("No packages matching %q in %s", opts.filter, env.Name)
		} else {
			a.output.Info("No packages found in %s", env.Name)
		}
		return nil
	}

	headers := []string{"Package", "Version"}
	var summaries []string
	if opts.summaries {
		headers = append(headers, "Summary")
		if summaries, err = a.collectSummaries(ctx, records); err != nil {
			return err
		}
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		row := []string{r.Name, r.Version}
		if summaries != nil {
			row = append(row, summaries[i])
		}
		rows = append(rows, row)
	}

	a.output.Table(headers, rows)
	a.output.Println("")
	a.output.Println("%d packages in %s (%s)", len(records), env.Name, env.RootPath)
	return nil
}

// enumerate lists the packages of env. Enumeration itself never fails, so an
// error here means the scan was interrupted and its result is incomplete.
func (a *App) enumerate(ctx context.Context, env detect.Environment) ([]packages.Record, error) {
	var set packages.Set
	err := a.withSpinner(ctx, "Loading packages for "+env.Name+"...", func() error {
		set = a.newEnumerator().Enumerate(ctx, env.RootPath)
		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}
	return set.Records(), nil
}

type summaryUpdate struct {
	row     int
	summary string
}

// collectSummaries dispatches one background lookup per record and gathers
// the callbacks until every row has answered. It fails if ctx ends first.
func (a *App) collectSummaries(ctx context.Context, records []packages.Record) ([]string, error) {
	summaries := make([]string, len(records))
	for i := range summaries {
		summaries[i] = loadingSummary
	}

	// Buffered so late callbacks never block after we stop reading.
	updates := make(chan summaryUpdate, len(records))
	dispatcher := a.newDispatcher()
	for i, r := range records {
		dispatcher.FetchSummaryAsync(r.Name, i, func(token any, summary string) {
			updates <- summaryUpdate{row: token.(int), summary: summary}
		})
	}

	err := a.withSpinner(ctx, "Fetching summaries from PyPI...", func() error {
		for range records {
			select {
			case u := <-updates:
				summaries[u.row] = u.summary
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// filterRecords keeps records whose name fuzzy-matches term, in their
// original order.
func filterRecords(records []packages.Record, term string) []packages.Record {
	if term == "" {
		return records
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}

	matches := fuzzy.Find(term, names)
	indexes := make([]int, 0, len(matches))
	for _, m := range matches {
		indexes = append(indexes, m.Index)
	}
	sort.Ints(indexes)

	matched := make([]packages.Record, 0, len(indexes))
	for _, i := range indexes {
		matched = append(matched, records[i])
	}
	return matched
}
