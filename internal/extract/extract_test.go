package extract

import (
	"os"
	"path/filepath"
	"testing"

	"geotag/internal/geojson"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawDataset = `{
	"type": "FeatureCollection",
	"name": "Valenzuela_Geographic_Data",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [120.97, 14.70]},
			"properties": {"name": "Mercury Drug", "amenity": "pharmacy"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [120.98, 14.71]},
			"properties": {"name": "Puregold", "amenity": "supermarket"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [120.99, 14.72]},
			"properties": {"name": "Unknown Shop"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [121.00, 14.73]},
			"properties": {"name": "Another Pharmacy", "amenity": "pharmacy"}
		}
	]
}`

func TestRunPartitionsByAmenityPresence(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "Valenzuela_Geographic_Data.geojson")
	require.NoError(t, os.WriteFile(source, []byte(rawDataset), 0o644))

	res, err := Run(source, "amenities.txt")
	require.NoError(t, err)

	assert.Equal(t, 3, res.WithAmenity)
	assert.Equal(t, 1, res.NoAmenity)
	assert.Equal(t, []string{"pharmacy", "supermarket"}, res.Amenities,
		"vocabulary is sorted and deduplicated")

	withCol, err := geojson.Load(res.WithAmenityPath)
	require.NoError(t, err)
	assert.Len(t, withCol.Features, 3)
	assert.Equal(t, "Valenzuela_Geographic_Data", withCol.Name)

	noCol, err := geojson.Load(res.NoAmenityPath)
	require.NoError(t, err)
	require.Len(t, noCol.Features, 1)
	assert.Equal(t, "Unknown Shop", noCol.Features[0].Name())

	vocabBytes, err := os.ReadFile(res.VocabularyPath)
	require.NoError(t, err)
	assert.Equal(t, "pharmacy\nsupermarket\n", string(vocabBytes))
}

func TestRunDerivesPathsFromSource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "City_Geographic_Data.geojson")
	require.NoError(t, os.WriteFile(source, []byte(rawDataset), 0o644))

	res, err := Run(source, "amenities.txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "City_Geographic_Data_with_amenity.geojson"), res.WithAmenityPath)
	assert.Equal(t, filepath.Join(dir, "City_Geographic_Data_no_amenity.geojson"), res.NoAmenityPath)
	assert.Equal(t, filepath.Join(dir, "amenities.txt"), res.VocabularyPath)
}

func TestRunMissingSourceErrors(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "nope.geojson"), "amenities.txt")
	assert.Error(t, err)
}
