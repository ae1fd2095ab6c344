package packages

import "sort"

// UnknownVersion is reported when a source omits a package version.
const UnknownVersion = "Unknown"

// Record is one installed package.
type Record struct {
	Name    string
	Version string
}

// Set maps package name to version. Each name appears once.
type Set map[string]string

// Records returns the set's entries sorted by name.
func (s Set) Records() []Record {
	records := make([]Record, 0, len(s))
	for name, version := range s {
		records = append(records, Record{Name: name, Version: version})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// Merge returns a new set with every entry of primary plus the entries of
// secondary whose names primary does not have.
func Merge(primary, secondary Set) Set {
	merged := make(Set, len(primary)+len(secondary))
	for name, version := range primary {
		merged[name] = version
	}
	for name, version := range secondary {
		if _, ok := merged[name]; !ok {
			merged[name] = version
		}
	}
	return merged
}

// descriptor is one package entry as written by conda-meta or pip list.
// Version is nil when the key is absent or null.
type descriptor struct {
	Name    string  `json:"name"`
	Version *string `json:"version"`
}

func (d descriptor) version() string {
	if d.Version == nil {
		return UnknownVersion
	}
	return *d.Version
}
