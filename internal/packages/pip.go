package packages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// InterpreterPath returns where an environment keeps its python executable on goos.
func InterpreterPath(root, goos string) string {
	if goos == "windows" {
		return filepath.Join(root, "python.exe")
	}
	return filepath.Join(root, "bin", "python")
}

// PipList runs `python -m pip list --format=json` with the environment's own
// interpreter. An environment without an interpreter has no pip packages.
func (e *Enumerator) PipList(ctx context.Context, root string) (Set, error) {
	python := InterpreterPath(root, e.goos)
	if _, err := os.Stat(python); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("locating interpreter: %w", err)
	}

	out, err := e.runner.Run(ctx, python, "-m", "pip", "list", "--format=json")
	if err != nil {
		return nil, fmt.Errorf("pip list: %w", err)
	}

	var entries []descriptor
	if err := json.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("parsing pip list output: %w", err)
	}

	pkgs := make(Set, len(entries))
	for _, d := range entries {
		if d.Name == "" {
			continue
		}
		pkgs[d.Name] = d.version()
	}
	return pkgs, nil
}
