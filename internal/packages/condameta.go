package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MetaDir is the directory under an environment root holding one JSON
// descriptor per conda-installed package.
const MetaDir = "conda-meta"

// ScanCondaMeta reads every <root>/conda-meta/*.json descriptor. Files that
// cannot be read or parsed are skipped and reported in the returned errors;
// they never abort the scan. A missing directory yields an empty set.
func ScanCondaMeta(root string) (Set, []error) {
	pkgs := make(Set)
	metaDir := filepath.Join(root, MetaDir)

	entries, err := os.ReadDir(metaDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pkgs, nil
		}
		return pkgs, []error{fmt.Errorf("reading %s: %w", metaDir, err)}
	}

	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}

		d, err := readDescriptor(filepath.Join(metaDir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pkgs[d.Name] = d.version()
	}

	return pkgs, errs
}

func readDescriptor(path string) (descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return descriptor{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var d descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return descriptor{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if d.Name == "" {
		return descriptor{}, fmt.Errorf("parsing %s: missing package name", path)
	}
	return d, nil
}
