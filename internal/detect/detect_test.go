package detect

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/company/conda-env-detector/internal/runner"
)

func fakeConda(out string, err error) runner.Runner {
	return runner.Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(out), err
	})
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"/opt/conda/envs/ml", "ml"},
		{"/home/u/miniconda3", "miniconda3"},
		{`C:\Users\u\miniconda3\envs\py311`, "py311"},
		{"relative-env", "relative-env"},
		{"/opt/conda/", "base"},
		{"", "base"},
		{"/", "base"},
	}

	for _, tt := range tests {
		if got := DeriveName(tt.root); got != tt.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}

func TestListEnvironments(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := runner.Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(`{"envs": ["/opt/conda", "/opt/conda/envs/ml"], "base_prefix": "/opt/conda"}`), nil
	})

	d := NewDiscoverer(WithRunner(r), WithExecutable("/usr/local/bin/conda"))
	listing, err := d.ListEnvironments(context.Background())
	if err != nil {
		t.Fatalf("ListEnvironments() error: %v", err)
	}

	if gotName != "/usr/local/bin/conda" {
		t.Errorf("executable = %q, want %q", gotName, "/usr/local/bin/conda")
	}
	if strings.Join(gotArgs, " ") != "env list --json" {
		t.Errorf("args = %v, want [env list --json]", gotArgs)
	}
	if listing.DefaultRoot != "/opt/conda" {
		t.Errorf("DefaultRoot = %q, want %q", listing.DefaultRoot, "/opt/conda")
	}
	if len(listing.Roots) != 2 {
		t.Errorf("Roots len = %d, want 2", len(listing.Roots))
	}
}

func TestListEnvironmentsRootPrefixFallback(t *testing.T) {
	d := NewDiscoverer(WithRunner(fakeConda(`{"envs": [], "root_prefix": "/srv/conda"}`, nil)))
	listing, err := d.ListEnvironments(context.Background())
	if err != nil {
		t.Fatalf("ListEnvironments() error: %v", err)
	}
	if listing.DefaultRoot != "/srv/conda" {
		t.Errorf("DefaultRoot = %q, want %q", listing.DefaultRoot, "/srv/conda")
	}
}

func TestListEnvironmentsRunFailure(t *testing.T) {
	cause := &exec.Error{Name: "conda", Err: exec.ErrNotFound}
	d := NewDiscoverer(WithRunner(fakeConda("", cause)))

	_, err := d.ListEnvironments(context.Background())

	var discErr *DiscoveryError
	if !errors.As(err, &discErr) {
		t.Fatalf("error = %v, want *DiscoveryError", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("DiscoveryError should unwrap to the underlying cause")
	}
	if !strings.Contains(err.Error(), "executable file not found") {
		t.Errorf("error = %q, should include the cause", err)
	}
}

func TestListEnvironmentsBadJSON(t *testing.T) {
	d := NewDiscoverer(WithRunner(fakeConda("WARNING: something\n{", nil)))

	_, err := d.ListEnvironments(context.Background())

	var discErr *DiscoveryError
	if !errors.As(err, &discErr) {
		t.Fatalf("error = %v, want *DiscoveryError", err)
	}
	if !strings.Contains(discErr.Op, "parsing") {
		t.Errorf("Op = %q, want a parsing op", discErr.Op)
	}
}

func TestEnvironmentsOrderAndDedup(t *testing.T) {
	out := `{"envs": ["/opt/conda", "/opt/conda/envs/ml", "/opt/conda/envs/web", "/opt/conda/envs/ml"], "base_prefix": "/opt/conda"}`
	d := NewDiscoverer(WithRunner(fakeConda(out, nil)))

	envs, err := d.Environments(context.Background())
	if err != nil {
		t.Fatalf("Environments() error: %v", err)
	}

	want := []Environment{
		{Name: "base", RootPath: "/opt/conda"},
		{Name: "ml", RootPath: "/opt/conda/envs/ml"},
		{Name: "web", RootPath: "/opt/conda/envs/web"},
	}
	if len(envs) != len(want) {
		t.Fatalf("Environments() = %v, want %v", envs, want)
	}
	for i := range want {
		if envs[i] != want[i] {
			t.Errorf("envs[%d] = %+v, want %+v", i, envs[i], want[i])
		}
	}
}

func TestEnvironmentsWithoutDefaultRoot(t *testing.T) {
	d := NewDiscoverer(WithRunner(fakeConda(`{"envs": ["/home/u/miniforge3"]}`, nil)))

	envs, err := d.Environments(context.Background())
	if err != nil {
		t.Fatalf("Environments() error: %v", err)
	}
	if len(envs) != 1 || envs[0].Name != "miniforge3" {
		t.Errorf("Environments() = %v, want [miniforge3]", envs)
	}
}

func TestEnvironmentsEmpty(t *testing.T) {
	for _, out := range []string{`{"envs": []}`, `{}`, `null`} {
		d := NewDiscoverer(WithRunner(fakeConda(out, nil)))

		_, err := d.Environments(context.Background())
		if !errors.Is(err, ErrNoEnvironments) {
			t.Errorf("output %s: error = %v, want ErrNoEnvironments", out, err)
		}
	}
}

func TestFind(t *testing.T) {
	envs := []Environment{
		{Name: "base", RootPath: "/opt/conda"},
		{Name: "ml", RootPath: "/opt/conda/envs/ml"},
	}

	if env, ok := Find(envs, "ml"); !ok || env.RootPath != "/opt/conda/envs/ml" {
		t.Errorf("Find(ml) = %v, %v", env, ok)
	}
	if env, ok := Find(envs, "/opt/conda"); !ok || env.Name != "base" {
		t.Errorf("Find(/opt/conda) = %v, %v", env, ok)
	}
	if _, ok := Find(envs, "nope"); ok {
		t.Error("Find(nope) should not match")
	}
}

func TestNewDiscovererDefaults(t *testing.T) {
	d := NewDiscoverer(WithExecutable(""))
	if d.Executable() != DefaultExecutable {
		t.Errorf("Executable() = %q, want %q", d.Executable(), DefaultExecutable)
	}
}
