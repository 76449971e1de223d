package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Collection is a GeoJSON FeatureCollection. Only the keys this tool
// touches are modeled; name and crs are carried through untouched so a
// rewritten file stays loadable by GIS tooling.
type Collection struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	CRS      json.RawMessage `json:"crs,omitempty"`
	Features []*Feature      `json:"features"`
}

// Feature is one geographic entity. The geometry is opaque to the
// annotation flow and is round-tripped verbatim; properties keep every
// key the source carried, with name and amenity accessed by key.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// geometry is the minimal shape needed to echo coordinates at the
// prompt. Anything beyond type/coordinates is preserved in the raw
// message, not here.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NormalizeName canonicalizes an entity name for cache keying and
// frequency counting: NFKC fold, whitespace collapse, trim. Case is
// preserved.
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
	return norm.NFKC.String(s)
}

func (f *Feature) propString(key string) string {
	if f.Properties == nil {
		return ""
	}
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// Name returns the normalized entity name, or "" when absent.
func (f *Feature) Name() string {
	return NormalizeName(f.propString("name"))
}

// Amenity returns the trimmed amenity label, or "" when unresolved.
func (f *Feature) Amenity() string {
	return strings.TrimSpace(f.propString("amenity"))
}

// Resolved reports whether the feature carries a non-empty amenity.
func (f *Feature) Resolved() bool {
	return f.Amenity() != ""
}

// SetAmenity marks the feature resolved. The label must be non-blank;
// resolution is never reverted by this tool.
func (f *Feature) SetAmenity(label string) {
	if f.Properties == nil {
		f.Properties = make(map[string]any)
	}
	f.Properties["amenity"] = label
}

// Coordinates returns a display string for the feature's coordinates.
// A feature without a parseable geometry is malformed: the annotation
// flow treats that as fatal for the dataset rather than skipping it.
func (f *Feature) Coordinates() (string, error) {
	if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
		return "", fmt.Errorf("feature %q has no geometry", f.Name())
	}
	var g geometry
	if err := json.Unmarshal(f.Geometry, &g); err != nil {
		return "", fmt.Errorf("feature %q has malformed geometry: %w", f.Name(), err)
	}
	if len(g.Coordinates) == 0 {
		return "", fmt.Errorf("feature %q has no coordinates", f.Name())
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, g.Coordinates); err != nil {
		return "", fmt.Errorf("feature %q has malformed coordinates: %w", f.Name(), err)
	}
	return buf.String(), nil
}

// Unresolved returns the features still missing an amenity, in
// collection order.
func (c *Collection) Unresolved() []*Feature {
	var out []*Feature
	for _, f := range c.Features {
		if !f.Resolved() {
			out = append(out, f)
		}
	}
	return out
}

// CountResolved returns how many features carry an amenity.
func (c *Collection) CountResolved() int {
	n := 0
	for _, f := range c.Features {
		if f.Resolved() {
			n++
		}
	}
	return n
}

// Load reads and parses a FeatureCollection from path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the collection to path atomically: marshal, write to a
// temp file, fsync, rename. A reader of path never observes a torn
// file, and a crash mid-save leaves the previous contents intact.
func Save(path string, c *Collection) error {
	if c.Type == "" {
		c.Type = "FeatureCollection"
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	tempPath := path + ".tmp"
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", tempPath, err)
	}
	defer func() {
		tempFile.Close()
		if err != nil {
			os.Remove(tempPath)
		}
	}()

	if _, err = tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file %s: %w", tempPath, err)
	}
	if err = tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file %s: %w", tempPath, err)
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file %s: %w", tempPath, err)
	}
	if err = os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, path, err)
	}
	return nil
}
