package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvVar overrides the workspace root regardless of configuration.
const EnvVar = "GEOTAG_DATA_DIR"

// Workspace provides a single source of truth for dataset and
// vocabulary paths. The layout is one subdirectory per city, each
// holding a dataset file plus an optional amenities list.
type Workspace struct {
	root string
}

// New returns a Workspace rooted at the resolved data directory.
//
// Resolution priority:
//  1. GEOTAG_DATA_DIR environment variable
//  2. configValue argument (from the config data_dir field)
func New(configValue string) (*Workspace, error) {
	root := configValue
	if env := os.Getenv(EnvVar); env != "" {
		root = env
	}
	if root == "" {
		return nil, fmt.Errorf("no data directory configured")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory %s: %w", root, err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the workspace root path.
func (w *Workspace) Root() string { return w.root }

// CityDir returns the directory for one city.
func (w *Workspace) CityDir(city string) string {
	return filepath.Join(w.root, city)
}

// Cities returns the city processing order. When assigned is non-empty
// it is returned as-is, minus names whose directory does not exist
// (reported via the returned missing list). Otherwise every
// subdirectory of the root is returned, sorted.
func (w *Workspace) Cities(assigned []string) (cities []string, missing []string, err error) {
	if len(assigned) > 0 {
		for _, city := range assigned {
			if info, statErr := os.Stat(w.CityDir(city)); statErr == nil && info.IsDir() {
				cities = append(cities, city)
			} else {
				missing = append(missing, city)
			}
		}
		return cities, missing, nil
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list data directory %s: %w", w.root, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			cities = append(cities, e.Name())
		}
	}
	sort.Strings(cities)
	return cities, nil, nil
}

// FindDataset locates the single dataset file in a city directory
// whose name ends with suffix. Returns "" when none exists.
func (w *Workspace) FindDataset(city, suffix string) (string, error) {
	dir := w.CityDir(city)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list city directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	// Deterministic pick when a directory unexpectedly holds several.
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// VocabularyFile returns the path of the raw amenity list for a city.
// The file is optional; callers treat a missing file as empty.
func (w *Workspace) VocabularyFile(city, filename string) string {
	return filepath.Join(w.CityDir(city), filename)
}

// ResumePath derives the resume-file path from a source dataset path
// by swapping the configured suffixes.
func ResumePath(sourcePath, sourceSuffix, resumeSuffix string) string {
	if strings.HasSuffix(sourcePath, sourceSuffix) {
		return strings.TrimSuffix(sourcePath, sourceSuffix) + resumeSuffix
	}
	return sourcePath
}
