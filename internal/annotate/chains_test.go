package annotate

import (
	"testing"

	"geotag/internal/geojson"
	"geotag/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCountsAndOrder(t *testing.T) {
	idx := BuildIndex([]*geojson.Feature{
		feat("Jollibee", ""),
		feat("Home", ""),
		feat("Jollibee", ""),
		feat(" Jollibee ", ""), // normalizes to the same name
		feat("", ""),           // nameless features never participate
		feat("Mang Inasal", "restaurant"), // resolved features are not counted
	})

	assert.Equal(t, 3, idx.Count("Jollibee"))
	assert.Equal(t, 1, idx.Count("Home"))
	assert.Equal(t, 0, idx.Count("Mang Inasal"))
	assert.Equal(t, []string{"Jollibee"}, idx.Chains())
}

func TestChainPromptedExactlyOnce(t *testing.T) {
	// Jollibee appears 5 times across two datasets.
	var batch []*geojson.Feature
	for i := 0; i < 3; i++ {
		batch = append(batch, feat("Jollibee", ""))
	}
	for i := 0; i < 2; i++ {
		batch = append(batch, feat("Jollibee", ""))
	}

	c := testCache(t)
	d := NewDetector(prompt.NewScript("fast_food"), c, nil)
	prompted, err := d.Resolve(BuildIndex(batch))
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)

	got, ok := c.Get("Jollibee")
	require.True(t, ok)
	assert.Equal(t, "fast_food", got)

	// A later run sees the cached name and asks nothing.
	d = NewDetector(prompt.NewScript(), c, nil)
	prompted, err = d.Resolve(BuildIndex(batch))
	require.NoError(t, err)
	assert.Equal(t, 0, prompted)
}

func TestSingletonsNeverPrompted(t *testing.T) {
	c := testCache(t)
	d := NewDetector(prompt.NewScript(), c, nil)
	prompted, err := d.Resolve(BuildIndex([]*geojson.Feature{
		feat("Home", ""),
		feat("Sari-sari Store", ""),
	}))
	require.NoError(t, err)
	assert.Equal(t, 0, prompted)
	assert.Equal(t, 0, c.Len())
}

func TestChainAnswerByVocabularyIndex(t *testing.T) {
	c := testCache(t)
	vocabulary := []string{"convenience_store"}
	d := NewDetector(prompt.NewScript("1"), c, vocabulary)
	prompted, err := d.Resolve(BuildIndex([]*geojson.Feature{
		feat("7-Eleven", ""),
		feat("7-Eleven", ""),
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)

	got, _ := c.Get("7-Eleven")
	assert.Equal(t, "convenience_store", got)
}

func TestChainQuitKeepsEarlierAnswers(t *testing.T) {
	c := testCache(t)
	d := NewDetector(prompt.NewScript("fast_food", "q"), c, nil)
	prompted, err := d.Resolve(BuildIndex([]*geojson.Feature{
		feat("Jollibee", ""), feat("Jollibee", ""),
		feat("McDonald's", ""), feat("McDonald's", ""),
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, prompted)
	assert.True(t, c.Has("Jollibee"))
	assert.False(t, c.Has("McDonald's"))
}

// The full scenario: chains resolve up front, auto-fill applies them,
// and only the singleton reaches the interactive loop.
func TestChainsThenEngine(t *testing.T) {
	source, resume := datasetPaths(t)
	writeDataset(t, source,
		feat("7-Eleven", ""), feat("7-Eleven", ""), feat("Home", ""))

	c := testCache(t)
	vocabulary := []string{"convenience_store"}

	col, err := geojson.Load(source)
	require.NoError(t, err)
	d := NewDetector(prompt.NewScript("1"), c, vocabulary)
	prompted, err := d.Resolve(BuildIndex(col.Features))
	require.NoError(t, err)
	require.Equal(t, 1, prompted)

	engine := NewEngine(prompt.NewScript("residential"), c, vocabulary)
	sum, err := engine.Run(source, resume)
	require.NoError(t, err)

	assert.Equal(t, StateComplete, sum.State)
	assert.Equal(t, 2, sum.FilledFromCache)
	assert.Equal(t, 1, sum.Prompted)

	final, err := geojson.Load(resume)
	require.NoError(t, err)
	assert.Equal(t, "convenience_store", final.Features[0].Amenity())
	assert.Equal(t, "convenience_store", final.Features[1].Amenity())
	assert.Equal(t, "residential", final.Features[2].Amenity())
}
