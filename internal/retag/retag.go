package retag

import (
	"strings"

	"geotag/internal/annotate"
	"geotag/internal/cache"
	"geotag/internal/geojson"
	"geotag/internal/prompt"
)

// Summary reports what one retag invocation did to one dataset.
type Summary struct {
	State       annotate.State
	Targets     int
	AutoApplied int
	Prompted    int
	Remaining   int
}

// Retagger replaces overly-generic amenity labels with specific ones,
// rewriting the annotated file in place. It shares the engine's
// persistence discipline but keeps its own cache key space, so
// answers from the original labeling pass never leak in as
// suggestions.
type Retagger struct {
	console *prompt.Console
	cache   *cache.Cache
	generic map[string]bool
}

// New returns a Retagger targeting the given generic labels
// (matched case-insensitively).
func New(console *prompt.Console, c *cache.Cache, genericLabels []string) *Retagger {
	generic := make(map[string]bool, len(genericLabels))
	for _, l := range genericLabels {
		generic[strings.ToLower(strings.TrimSpace(l))] = true
	}
	return &Retagger{console: console, cache: c, generic: generic}
}

func (r *Retagger) isTarget(f *geojson.Feature) bool {
	amenity := f.Amenity()
	return amenity != "" && r.generic[strings.ToLower(amenity)]
}

// Run processes one annotated dataset in place. Cache hits apply
// automatically, interleaved with prompts in dataset order; every
// accepted answer is persisted before the next feature is shown.
func (r *Retagger) Run(path string) (*Summary, error) {
	sum := &Summary{State: annotate.StateLoading}

	col, err := geojson.Load(path)
	if err != nil {
		return nil, err
	}

	var targets []*geojson.Feature
	for _, f := range col.Features {
		if r.isTarget(f) {
			targets = append(targets, f)
		}
	}
	sum.Targets = len(targets)
	sum.Remaining = len(targets)
	if len(targets) == 0 {
		sum.State = annotate.StateComplete
		r.console.OK("No generic labels left in %s", path)
		return sum, nil
	}

	r.console.Header("Found %d entries with generic labels in %s", len(targets), path)

	sum.State = annotate.StateInteractive
	total := len(targets)
	for i, f := range targets {
		name := f.Name()

		// Inline auto-fill: a name already answered this run (or any
		// prior run) never prompts again.
		if name != "" {
			if amenity, ok := r.cache.Get(name); ok {
				f.SetAmenity(amenity)
				sum.AutoApplied++
				sum.Remaining--
				if err := geojson.Save(path, col); err != nil {
					return nil, err
				}
				r.console.Muted("[%d/%d] %s auto-retagged as %s", i+1, total, displayName(f), amenity)
				continue
			}
		}

		coords, err := f.Coordinates()
		if err != nil {
			return nil, err
		}

		r.console.Divider()
		r.console.Progress(i+1, total)
		r.console.Field("Name", displayName(f))
		r.console.Field("Coords", coords)
		r.console.Field("Current amenity", f.Amenity())

		answer, quit, err := askSpecific(r.console)
		if err != nil {
			return nil, err
		}
		if quit {
			if err := geojson.Save(path, col); err != nil {
				return nil, err
			}
			sum.State = annotate.StatePaused
			r.console.Warn("Quitting... progress saved.")
			return sum, nil
		}

		f.SetAmenity(answer)
		sum.Prompted++
		sum.Remaining--
		if err := geojson.Save(path, col); err != nil {
			return nil, err
		}
		if name != "" {
			if err := r.cache.Put(name, answer); err != nil {
				return nil, err
			}
		}
		r.console.Muted("Progress saved to: %s", path)
	}

	sum.State = annotate.StateComplete
	return sum, nil
}

// askSpecific reads one free-text replacement label. Unlike the main
// annotation prompt there is no vocabulary menu: the whole point is a
// label more specific than anything already in the corpus.
func askSpecific(c *prompt.Console) (answer string, quit bool, err error) {
	for {
		input, err := c.Ask("Enter specific amenity (e.g., clothes, electronics, books) or 'q' to quit: ")
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(input, "q") {
			return "", true, nil
		}
		if input == "" {
			c.Errorf("Amenity cannot be empty. Please enter a value.")
			continue
		}
		return input, false, nil
	}
}

func displayName(f *geojson.Feature) string {
	if name := f.Name(); name != "" {
		return name
	}
	return "Unnamed"
}
