package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"geotag/internal/geojson"
)

// Result reports one partition pass.
type Result struct {
	WithAmenityPath string
	NoAmenityPath   string
	VocabularyPath  string
	WithAmenity     int
	NoAmenity       int
	Amenities       []string
}

// Run splits a labeled/unlabeled dataset into two files next to the
// source and writes the city's raw amenity vocabulary list. This is
// the one-shot preparation step before annotation: the `_no_amenity`
// output becomes the annotate command's source dataset, and the
// amenities list feeds vocabulary reduction.
func Run(sourcePath, vocabularyFile string) (*Result, error) {
	col, err := geojson.Load(sourcePath)
	if err != nil {
		return nil, err
	}

	withAmenity := &geojson.Collection{Type: "FeatureCollection", Name: col.Name, CRS: col.CRS}
	noAmenity := &geojson.Collection{Type: "FeatureCollection", Name: col.Name, CRS: col.CRS}
	amenitySet := make(map[string]bool)
	for _, f := range col.Features {
		if f.Resolved() {
			amenitySet[f.Amenity()] = true
			withAmenity.Features = append(withAmenity.Features, f)
		} else {
			noAmenity.Features = append(noAmenity.Features, f)
		}
	}

	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	res := &Result{
		WithAmenityPath: base + "_with_amenity.geojson",
		NoAmenityPath:   base + "_no_amenity.geojson",
		VocabularyPath:  filepath.Join(filepath.Dir(sourcePath), vocabularyFile),
		WithAmenity:     len(withAmenity.Features),
		NoAmenity:       len(noAmenity.Features),
	}

	if err := geojson.Save(res.WithAmenityPath, withAmenity); err != nil {
		return nil, err
	}
	if err := geojson.Save(res.NoAmenityPath, noAmenity); err != nil {
		return nil, err
	}

	for a := range amenitySet {
		res.Amenities = append(res.Amenities, a)
	}
	sort.Strings(res.Amenities)
	if err := writeVocabulary(res.VocabularyPath, res.Amenities); err != nil {
		return nil, err
	}
	return res, nil
}

func writeVocabulary(path string, amenities []string) error {
	var b strings.Builder
	for _, a := range amenities {
		b.WriteString(a)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write vocabulary list %s: %w", path, err)
	}
	return nil
}
