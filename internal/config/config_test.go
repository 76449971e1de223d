package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "geotag.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "geojson", cfg.DataDir)
	assert.Equal(t, "geotag.db", cfg.Database)
	assert.Equal(t, "amenities.txt", cfg.Vocabulary.File)
	assert.InDelta(t, 0.85, cfg.Vocabulary.SimilarityThreshold, 1e-9)
	assert.Equal(t, []string{"retail_store", "retail store"}, cfg.Retag.GenericLabels)
	assert.Equal(t, "_no_amenity.geojson", cfg.SourceSuffix)
	assert.Equal(t, "_annotated.geojson", cfg.ResumeSuffix)
}

func TestLoadParsesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotag.yaml")
	content := `
data_dir: /data/geojson
cities:
  - Pasay
  - Makati
  - Taguig
vocabulary:
  similarity_threshold: 0.9
retag:
  generic_labels: [retail_store, shop]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/geojson", cfg.DataDir)
	assert.Equal(t, []string{"Pasay", "Makati", "Taguig"}, cfg.Cities)
	assert.InDelta(t, 0.9, cfg.Vocabulary.SimilarityThreshold, 1e-9)
	assert.Equal(t, []string{"retail_store", "shop"}, cfg.Retag.GenericLabels)
	// Unset fields still take defaults.
	assert.Equal(t, "amenities.txt", cfg.Vocabulary.File)
	assert.Equal(t, "geotag.db", cfg.Database)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vocabulary:\n  similarity_threshold: 1.5\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsEqualSuffixes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotag.yaml")
	content := "source_suffix: _x.geojson\nresume_suffix: _x.geojson\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
