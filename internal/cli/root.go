package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/config"
	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/fetch"
	"github.com/company/conda-env-detector/internal/logging"
	"github.com/company/conda-env-detector/internal/packages"
	"github.com/company/conda-env-detector/internal/registry"
	"github.com/company/conda-env-detector/internal/runner"
	"github.com/company/conda-env-detector/internal/ui"
)

// App is the dependency container for all CLI commands.
type App struct {
	rootCmd     *cobra.Command
	version     string
	commit      string
	date        string
	config      *config.Config
	output      *ui.Output
	logger      *log.Logger
	runner      runner.Runner
	interactive bool
	configPath  string
	condaExe    string
	registryURL string
	condaEnv    string
	registryEnv string
	debug       bool
}

// NewApp creates the root command and registers all subcommands.
func NewApp(version, commit, date string) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		output:  ui.NewOutput(),
		logger:  logging.New(os.Stderr, false),
		runner:  runner.Exec{},
	}

	root := &cobra.Command{
		Use:   "conda-env-detector",
		Short: "Inspect Conda environments and their packages",
		Long:  "Lists local Conda environments, the conda and pip packages installed in each, and package details from PyPI.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envPath := os.Getenv("CONDA_ENV_DETECTOR_CONFIG"); envPath != "" && app.configPath == "" {
				app.configPath = envPath
			}
			// Kept apart from the flag values so init only records flags.
			app.condaEnv = os.Getenv("CONDA_ENV_DETECTOR_CONDA")
			app.registryEnv = os.Getenv("CONDA_ENV_DETECTOR_REGISTRY")
			if os.Getenv("CONDA_ENV_DETECTOR_DEBUG") != "" {
				app.debug = true
			}
			if os.Getenv("CONDA_ENV_DETECTOR_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
				app.output.SetNoColor(true)
			}

			app.logger = logging.New(os.Stderr, app.debug)
			app.interactive = ui.Interactive()

			if err := app.LoadConfig(); err != nil {
				app.output.Warning("Ignoring config file: %v", err)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default: user config dir, overrides CONDA_ENV_DETECTOR_CONFIG)")
	root.PersistentFlags().StringVar(&app.condaExe, "conda", "", "conda executable (overrides CONDA_ENV_DETECTOR_CONDA)")
	root.PersistentFlags().StringVar(&app.registryURL, "registry", "", "package registry URL (overrides CONDA_ENV_DETECTOR_REGISTRY)")
	root.PersistentFlags().BoolVar(&app.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		app.newEnvsCmd(),
		app.newPackagesCmd(),
		app.newInfoCmd(),
		app.newBrowseCmd(),
		app.newDoctorCmd(),
		app.newInitCmd(),
		app.newVersionCmd(),
	)

	app.rootCmd = root
	return app
}

// Execute runs the root command.
func (a *App) Execute(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// LoadConfig loads the config file, falling back to defaults when there is
// none. On error the defaults are still installed.
func (a *App) LoadConfig() error {
	a.config = config.Default()

	path, err := a.getConfigPath()
	if err != nil {
		return err
	}
	if !config.ConfigExists(path) {
		return nil
	}

	c, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	a.config = c
	a.debugf("loaded config from %s", path)
	return nil
}

// cfg returns the loaded config, or defaults when none was loaded.
func (a *App) cfg() *config.Config {
	if a.config == nil {
		a.config = config.Default()
	}
	return a.config
}

// getConfigPath returns the effective config file path.
func (a *App) getConfigPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultPath()
}

// getCondaExecutable returns the effective conda command: flag, env var,
// config, then $CONDA_EXE as exported by an activated conda shell.
func (a *App) getCondaExecutable() string {
	if a.condaExe != "" {
		return a.condaExe
	}
	if a.condaEnv != "" {
		return a.condaEnv
	}
	if exe := a.cfg().Conda.Executable; exe != "" {
		return exe
	}
	if exe := os.Getenv("CONDA_EXE"); exe != "" {
		return exe
	}
	return detect.DefaultExecutable
}

// getRegistryURL returns the effective registry root.
func (a *App) getRegistryURL() string {
	if a.registryURL != "" {
		return a.registryURL
	}
	if a.registryEnv != "" {
		return a.registryEnv
	}
	return a.cfg().Registry.URL
}

func (a *App) newDiscoverer() *detect.Discoverer {
	return detect.NewDiscoverer(
		detect.WithExecutable(a.getCondaExecutable()),
		detect.WithRunner(a.runner),
	)
}

func (a *App) newEnumerator() *packages.Enumerator {
	return packages.NewEnumerator(
		packages.WithRunner(a.runner),
		packages.WithLogger(a.logger),
	)
}

func (a *App) newRegistryClient() *registry.Client {
	return registry.NewClient(
		registry.WithBaseURL(a.getRegistryURL()),
		registry.WithTimeout(a.cfg().Registry.Timeout),
		registry.WithUserAgent("conda-env-detector/"+a.version),
	)
}

func (a *App) newDispatcher() *fetch.Dispatcher {
	return fetch.NewDispatcher(
		a.newRegistryClient(),
		fetch.WithLogger(a.logger),
		fetch.WithSummaryLimit(a.cfg().Display.SummaryWidth),
	)
}

// withSpinner shows a spinner around fn when attached to a terminal.
func (a *App) withSpinner(ctx context.Context, title string, fn func() error) error {
	if !a.interactive {
		return fn()
	}
	return ui.WithSpinner(ctx, title, fn)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			a.output.Info("conda-env-detector %s (commit: %s, built: %s)", a.version, a.commit, a.date)
		},
	}
}

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// debugf logs a debug message if debug mode is enabled.
func (a *App) debugf(format string, args ...any) {
	if a.debug {
		a.logger.Debugf(format, args...)
	}
}
