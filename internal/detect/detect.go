package detect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/company/conda-env-detector/internal/runner"
)

// BaseName labels the default environment, and any root whose path has no final component.
const BaseName = "base"

// DefaultExecutable is the conda command used when nothing else is configured.
const DefaultExecutable = "conda"

// ErrNoEnvironments is returned when discovery succeeds but reports nothing.
var ErrNoEnvironments = errors.New("no Conda environments detected")

// DiscoveryError reports a failed environment listing. Err carries the cause.
type DiscoveryError struct {
	Op  string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("failed to get Conda environments: %s: %v", e.Op, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// Environment is one discovered environment.
type Environment struct {
	Name     string
	RootPath string
}

// Listing is the parsed output of `conda env list --json`.
type Listing struct {
	// DefaultRoot is the base environment prefix, empty when not reported.
	DefaultRoot string
	Roots       []string
}

type envListJSON struct {
	Envs       []string `json:"envs"`
	BasePrefix string   `json:"base_prefix"`
	RootPrefix string   `json:"root_prefix"`
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// Discoverer lists conda environments by invoking the conda executable.
type Discoverer struct {
	executable string
	runner     runner.Runner
}

// NewDiscoverer creates a discoverer that runs DefaultExecutable through os/exec.
func NewDiscoverer(opts ...Option) *Discoverer {
	d := &Discoverer{
		executable: DefaultExecutable,
		runner:     runner.Exec{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithExecutable sets the conda executable name or path.
func WithExecutable(exe string) Option {
	return func(d *Discoverer) {
		if exe != "" {
			d.executable = exe
		}
	}
}

// WithRunner sets the command runner (useful for testing).
func WithRunner(r runner.Runner) Option {
	return func(d *Discoverer) { d.runner = r }
}

// Executable returns the conda command the discoverer invokes.
func (d *Discoverer) Executable() string {
	return d.executable
}

// ListEnvironments invokes conda once and parses its environment listing.
func (d *Discoverer) ListEnvironments(ctx context.Context) (*Listing, error) {
	out, err := d.runner.Run(ctx, d.executable, "env", "list", "--json")
	if err != nil {
		return nil, &DiscoveryError{Op: "running " + d.executable + " env list", Err: err}
	}

	listing, err := ParseListing(out)
	if err != nil {
		return nil, &DiscoveryError{Op: "parsing " + d.executable + " env list output", Err: err}
	}
	return listing, nil
}

// Environments lists environments with derived names, the default root first.
// It returns ErrNoEnvironments when the listing is empty.
func (d *Discoverer) Environments(ctx context.Context) ([]Environment, error) {
	listing, err := d.ListEnvironments(ctx)
	if err != nil {
		return nil, err
	}

	envs := listing.Environments()
	if len(envs) == 0 {
		return nil, ErrNoEnvironments
	}
	return envs, nil
}

// ParseListing decodes conda's JSON environment listing.
func ParseListing(data []byte) (*Listing, error) {
	var raw envListJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	listing := &Listing{
		DefaultRoot: raw.BasePrefix,
		Roots:       raw.Envs,
	}
	if listing.DefaultRoot == "" {
		listing.DefaultRoot = raw.RootPrefix
	}
	return listing, nil
}

// Environments turns the listing into named environments. The default root
// comes first as "base"; each root path appears once.
func (l *Listing) Environments() []Environment {
	var envs []Environment
	seen := make(map[string]bool)

	if l.DefaultRoot != "" {
		envs = append(envs, Environment{Name: BaseName, RootPath: l.DefaultRoot})
		seen[l.DefaultRoot] = true
	}

	for _, root := range l.Roots {
		if root == "" || seen[root] {
			continue
		}
		seen[root] = true
		envs = append(envs, Environment{Name: DeriveName(root), RootPath: root})
	}

	return envs
}

// DeriveName returns the final component of root, or "base" when it has none.
// Both slash styles are separators so Windows prefixes work on any host.
func DeriveName(root string) string {
	name := root[strings.LastIndexAny(root, `/\`)+1:]
	if name == "" {
		return BaseName
	}
	return name
}

// Find returns the environment whose name or root path matches key.
func Find(envs []Environment, key string) (Environment, bool) {
	for _, env := range envs {
		if env.RootPath == key {
			return env, true
		}
	}
	for _, env := range envs {
		if env.Name == key {
			return env, true
		}
	}
	return Environment{}, false
}
