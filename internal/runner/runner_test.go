package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecMissingExecutable(t *testing.T) {
	_, err := Exec{}.Run(context.Background(), "conda-env-detector-no-such-binary")
	if err == nil {
		t.Fatal("Run() should fail for a missing executable")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error = %v, want exec.ErrNotFound", err)
	}
}

func TestExecCapturesStdout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	out, err := Exec{}.Run(context.Background(), "sh", "-c", "printf '[]'")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("stdout = %q, want %q", out, "[]")
	}
}

func TestExecNonZeroExitIncludesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	_, err := Exec{}.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Run() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %q, should contain stderr", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("error should wrap *exec.ExitError, got %T", err)
	}
}

func TestFuncAdapter(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := Func(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("ok"), nil
	})

	out, err := r.Run(context.Background(), "conda", "env", "list")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if string(out) != "ok" {
		t.Errorf("stdout = %q, want %q", out, "ok")
	}
	if gotName != "conda" || strings.Join(gotArgs, " ") != "env list" {
		t.Errorf("called %s %v, want conda [env list]", gotName, gotArgs)
	}
}
