package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/company/conda-env-detector/internal/config"
	"github.com/company/conda-env-detector/internal/detect"
	"github.com/company/conda-env-detector/internal/registry"
)

// doctorProbePackage is looked up to check that the registry answers.
const doctorProbePackage = "pip"

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context())
		},
	}
}

func (a *App) runDoctor(ctx context.Context) error {
	allOK := true

	// 1. Config file
	if path, err := a.getConfigPath(); err != nil {
		a.output.Warning("Cannot locate config directory: %v", err)
	} else if config.ConfigExists(path) {
		if _, err := config.LoadConfig(path); err != nil {
			a.output.Error("Config file invalid: %v", err)
			allOK = false
		} else {
			a.output.Success("%s found", path)
		}
	} else {
		a.output.Info("No config file at %s, using defaults", path)
	}

	// 2. Conda executable
	exe := a.getCondaExecutable()
	if resolved, err := exec.LookPath(exe); err != nil {
		a.output.Error("%s not found: %v", exe, err)
		allOK = false
	} else {
		a.output.Success("conda executable at %s", resolved)
	}

	// 3. Environment discovery
	envs, err := a.newDiscoverer().Environments(ctx)
	if errors.Is(err, detect.ErrNoEnvironments) {
		a.output.Warning("conda reports no environments")
	} else if err != nil {
		a.output.Error("Environment discovery failed: %v", err)
		allOK = false
	} else {
		a.output.Success("%d environments detected", len(envs))
	}

	// 4. Registry reachable (use a short timeout so doctor doesn't hang)
	registryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	info := a.newRegistryClient().Fetch(registryCtx, doctorProbePackage)
	if info.Outcome != registry.OutcomeOK {
		a.output.Error("Registry check failed at %s (%s): %s", a.getRegistryURL(), info.Outcome, info.Summary)
		allOK = false
	} else {
		a.output.Success("Registry reachable at %s", a.getRegistryURL())
	}

	if allOK {
		fmt.Fprintln(a.output.Stdout())
		a.output.Success("Everything looks good!")
	}

	return nil
}
