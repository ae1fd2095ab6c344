package packages

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/company/conda-env-detector/internal/logging"
	"github.com/company/conda-env-detector/internal/runner"
)

// setupEnv creates an environment root with the given conda-meta files and,
// when withPython is set, an empty bin/python.
func setupEnv(t *testing.T, meta map[string]string, withPython bool) string {
	t.Helper()

	root := t.TempDir()
	metaDir := filepath.Join(root, MetaDir)
	if err := os.MkdirAll(metaDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range meta {
		if err := os.WriteFile(filepath.Join(metaDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if withPython {
		python := InterpreterPath(root, "linux")
		if err := os.MkdirAll(filepath.Dir(python), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(python, nil, 0755); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func fakePip(out string, err error) runner.Runner {
	return runner.Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(out), err
	})
}

func TestEnumerateCondaMetaWinsCollisions(t *testing.T) {
	root := setupEnv(t, map[string]string{
		"numpy-1.24.0-py311_0.json": `{"name": "numpy", "version": "1.24.0", "build": "py311_0"}`,
	}, true)

	var gotArgs []string
	r := runner.Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(`[{"name": "numpy", "version": "1.20.0"}, {"name": "requests", "version": "2.31.0"}]`), nil
	})

	e := NewEnumerator(WithRunner(r), WithGOOS("linux"))
	got := e.Enumerate(context.Background(), root)

	want := Set{"numpy": "1.24.0", "requests": "2.31.0"}
	if len(got) != len(want) {
		t.Fatalf("Enumerate() = %v, want %v", got, want)
	}
	for name, version := range want {
		if got[name] != version {
			t.Errorf("%s = %q, want %q", name, got[name], version)
		}
	}

	wantArgs := InterpreterPath(root, "linux") + " -m pip list --format=json"
	if strings.Join(gotArgs, " ") != wantArgs {
		t.Errorf("ran %q, want %q", strings.Join(gotArgs, " "), wantArgs)
	}
}

func TestEnumerateSkipsMalformedDescriptors(t *testing.T) {
	root := setupEnv(t, map[string]string{
		"good-1.0.json":  `{"name": "good", "version": "1.0"}`,
		"broken.json":    `{"name": "broken",`,
		"nameless.json":  `{"version": "2.0"}`,
		"noversion.json": `{"name": "noversion"}`,
		"history":        `not a descriptor`,
		".hidden.json":   `{"name": "hidden"}`,
	}, false)

	var logs bytes.Buffer
	e := NewEnumerator(WithGOOS("linux"), WithLogger(logging.New(&logs, false)))
	got := e.Enumerate(context.Background(), root)

	want := Set{"good": "1.0", "noversion": UnknownVersion}
	if len(got) != len(want) {
		t.Fatalf("Enumerate() = %v, want %v", got, want)
	}
	for name, version := range want {
		if got[name] != version {
			t.Errorf("%s = %q, want %q", name, got[name], version)
		}
	}

	if !strings.Contains(logs.String(), "broken.json") || !strings.Contains(logs.String(), "nameless.json") {
		t.Errorf("logs = %q, want both malformed files reported", logs.String())
	}
}

func TestEnumerateWithoutInterpreter(t *testing.T) {
	root := setupEnv(t, map[string]string{
		"zlib-1.2.13.json": `{"name": "zlib", "version": "1.2.13"}`,
	}, false)

	called := false
	r := runner.Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		called = true
		return nil, nil
	})

	e := NewEnumerator(WithRunner(r), WithGOOS("linux"))
	got := e.Enumerate(context.Background(), root)

	if called {
		t.Error("pip should not run when the interpreter is missing")
	}
	if len(got) != 1 || got["zlib"] != "1.2.13" {
		t.Errorf("Enumerate() = %v, want {zlib: 1.2.13}", got)
	}
}

func TestEnumeratePipFailureDegrades(t *testing.T) {
	root := setupEnv(t, map[string]string{
		"python-3.11.json": `{"name": "python", "version": "3.11.4"}`,
	}, true)

	var logs bytes.Buffer
	e := NewEnumerator(
		WithRunner(fakePip("", errors.New("exit status 1: No module named pip"))),
		WithGOOS("linux"),
		WithLogger(logging.New(&logs, false)),
	)
	got := e.Enumerate(context.Background(), root)

	if len(got) != 1 || got["python"] != "3.11.4" {
		t.Errorf("Enumerate() = %v, want only conda-meta entries", got)
	}
	if !strings.Contains(logs.String(), "No module named pip") {
		t.Errorf("logs = %q, want pip failure logged", logs.String())
	}
}

func TestEnumeratePipBadJSONDegrades(t *testing.T) {
	root := setupEnv(t, nil, true)

	e := NewEnumerator(WithRunner(fakePip("Traceback", nil)), WithGOOS("linux"))
	got := e.Enumerate(context.Background(), root)

	if len(got) != 0 {
		t.Errorf("Enumerate() = %v, want empty", got)
	}
}

func TestEnumerateMissingRoot(t *testing.T) {
	e := NewEnumerator(WithGOOS("linux"))
	got := e.Enumerate(context.Background(), filepath.Join(t.TempDir(), "gone"))

	if got == nil || len(got) != 0 {
		t.Errorf("Enumerate() = %v, want empty non-nil set", got)
	}
}

func TestPipListDefaultsVersion(t *testing.T) {
	root := setupEnv(t, nil, true)

	e := NewEnumerator(WithRunner(fakePip(`[{"name": "local-pkg"}, {"version": "1.0"}]`, nil)), WithGOOS("linux"))
	got, err := e.PipList(context.Background(), root)
	if err != nil {
		t.Fatalf("PipList() error: %v", err)
	}

	if len(got) != 1 || got["local-pkg"] != UnknownVersion {
		t.Errorf("PipList() = %v, want {local-pkg: Unknown}", got)
	}
}

func TestEmptyVersionIsKept(t *testing.T) {
	root := setupEnv(t, map[string]string{
		"empty-0.json": `{"name": "empty", "version": ""}`,
		"null-0.json":  `{"name": "null", "version": null}`,
	}, true)

	e := NewEnumerator(WithRunner(fakePip(`[{"name": "blank", "version": ""}]`, nil)), WithGOOS("linux"))
	got := e.Enumerate(context.Background(), root)

	want := Set{"empty": "", "null": UnknownVersion, "blank": ""}
	if len(got) != len(want) {
		t.Fatalf("Enumerate() = %v, want %v", got, want)
	}
	for name, version := range want {
		if v, ok := got[name]; !ok || v != version {
			t.Errorf("%s = %q, want %q", name, v, version)
		}
	}
}

func TestInterpreterPath(t *testing.T) {
	if got := InterpreterPath("/opt/conda", "linux"); got != filepath.Join("/opt/conda", "bin", "python") {
		t.Errorf("linux: %q", got)
	}
	if got := InterpreterPath("/opt/conda", "darwin"); got != filepath.Join("/opt/conda", "bin", "python") {
		t.Errorf("darwin: %q", got)
	}
	if got := InterpreterPath("envroot", "windows"); got != filepath.Join("envroot", "python.exe") {
		t.Errorf("windows: %q", got)
	}
}

func TestScanCondaMetaMissingDir(t *testing.T) {
	got, errs := ScanCondaMeta(t.TempDir())
	if len(got) != 0 || len(errs) != 0 {
		t.Errorf("ScanCondaMeta() = %v, %v; want empty", got, errs)
	}
}
