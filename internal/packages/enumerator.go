package packages

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/company/conda-env-detector/internal/logging"
	"github.com/company/conda-env-detector/internal/runner"
)

// Option configures an Enumerator.
type Option func(*Enumerator)

// Enumerator lists the packages installed in an environment from its
// conda-meta descriptors and from pip.
type Enumerator struct {
	runner runner.Runner
	logger *log.Logger
	goos   string
}

// NewEnumerator creates an enumerator for the host platform.
func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{
		runner: runner.Exec{},
		logger: logging.Discard(),
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRunner sets the command runner used for pip (useful for testing).
func WithRunner(r runner.Runner) Option {
	return func(e *Enumerator) { e.runner = r }
}

// WithLogger sets where skipped descriptors and source failures are logged.
func WithLogger(l *log.Logger) Option {
	return func(e *Enumerator) { e.logger = l }
}

// WithGOOS overrides the platform used to locate the interpreter.
func WithGOOS(goos string) Option {
	return func(e *Enumerator) { e.goos = goos }
}

// Enumerate returns every package in the environment at root. It never
// fails: a source that errors contributes nothing and the error is logged.
// Conda-meta entries win over pip entries with the same name.
func (e *Enumerator) Enumerate(ctx context.Context, root string) Set {
	meta, errs := ScanCondaMeta(root)
	for _, err := range errs {
		e.logger.Warn("skipped conda package descriptor", "env", root, "err", err)
	}

	pip, err := e.PipList(ctx, root)
	if err != nil {
		e.logger.Warn("failed to load pip packages", "env", root, "err", err)
		pip = nil
	}

	e.logger.Debug("enumerated packages", "env", root, "conda", len(meta), "pip", len(pip))
	return Merge(meta, pip)
}
