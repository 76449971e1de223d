package annotate

import (
	"strconv"

	"geotag/internal/cache"
	"geotag/internal/geojson"
	"geotag/internal/prompt"
)

// Index counts name occurrences across a batch of features, keeping
// first-observed order. Derived data: rebuilt each run, never
// persisted.
type Index struct {
	counts map[string]int
	order  []string
}

// BuildIndex tallies the names of the given unresolved features.
// Nameless features do not participate in chain detection.
func BuildIndex(features []*geojson.Feature) *Index {
	idx := &Index{counts: make(map[string]int)}
	for _, f := range features {
		if f.Resolved() {
			continue
		}
		name := f.Name()
		if name == "" {
			continue
		}
		if _, seen := idx.counts[name]; !seen {
			idx.order = append(idx.order, name)
		}
		idx.counts[name]++
	}
	return idx
}

// Count returns the occurrence count for name.
func (i *Index) Count(name string) int {
	return i.counts[name]
}

// Chains returns the names with more than one occurrence, in
// first-observed order.
func (i *Index) Chains() []string {
	var out []string
	for _, name := range i.order {
		if i.counts[name] > 1 {
			out = append(out, name)
		}
	}
	return out
}

// Detector pre-resolves repeated names ("chains") from a single prompt
// each, writing the answers into the shared annotation cache so the
// engine's auto-fill step applies them to every occurrence.
type Detector struct {
	console    *prompt.Console
	cache      *cache.Cache
	vocabulary []string
}

// NewDetector returns a Detector writing into the given cache.
func NewDetector(console *prompt.Console, c *cache.Cache, vocabulary []string) *Detector {
	return &Detector{console: console, cache: c, vocabulary: vocabulary}
}

// Resolve prompts once per uncached chain name. Already-cached names
// and singletons are never prompted, which bounds prompts to one per
// distinct name across all runs. The quit token skips the remaining
// chain prompts without discarding answers already given.
func (d *Detector) Resolve(idx *Index) (prompted int, err error) {
	chains := idx.Chains()
	pending := 0
	for _, name := range chains {
		if !d.cache.Has(name) {
			pending++
		}
	}
	if pending == 0 {
		return 0, nil
	}

	d.console.Header("Found %d repeated names to resolve up front", pending)
	for _, name := range chains {
		if d.cache.Has(name) {
			continue
		}
		d.console.Divider()
		d.console.Field("Name", name)
		d.console.Field("Occurrences", strconv.Itoa(idx.Count(name)))
		d.console.Menu("Available amenities (from all cities):", d.vocabulary)

		answer, quit, err := AskAmenity(d.console, "Enter amenity for all occurrences (number or text, 'q' to skip ahead): ", d.vocabulary)
		if err != nil {
			return prompted, err
		}
		if quit {
			d.console.Warn("Skipping remaining chain prompts.")
			return prompted, nil
		}
		if err := d.cache.Put(name, answer); err != nil {
			return prompted, err
		}
		prompted++
	}
	return prompted, nil
}
