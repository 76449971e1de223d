package annotate

import (
	"fmt"
	"os"

	"geotag/internal/cache"
	"geotag/internal/geojson"
	"geotag/internal/prompt"
)

// State is the engine's position in its per-dataset lifecycle.
type State int

const (
	StateLoading State = iota
	StateAutoFilling
	StateInteractive
	StateComplete
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAutoFilling:
		return "auto-filling"
	case StateInteractive:
		return "interactive"
	case StateComplete:
		return "complete"
	case StatePaused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Summary reports what one engine invocation did to one dataset.
type Summary struct {
	State           State
	LoadedFrom      string
	Resumed         bool
	Total           int
	AlreadyResolved int
	FilledFromCache int
	Prompted        int
	Remaining       int
}

// Engine walks one dataset's unresolved features to completion or
// pause. Every accepted answer is persisted (resume file, then cache)
// before the next prompt, so an interruption loses at most the answer
// in flight.
type Engine struct {
	console    *prompt.Console
	cache      *cache.Cache
	vocabulary []string
}

// NewEngine returns an engine sharing the given cache and canonical
// vocabulary across datasets.
func NewEngine(console *prompt.Console, c *cache.Cache, vocabulary []string) *Engine {
	return &Engine{console: console, cache: c, vocabulary: vocabulary}
}

// Run processes one dataset. The resume file, when present, supersedes
// the source: it holds prior partial progress.
func (e *Engine) Run(sourcePath, resumePath string) (*Summary, error) {
	sum := &Summary{State: StateLoading}

	// LOADING: the resume file's existence is a durable state
	// transition, not a path convenience.
	loadPath := sourcePath
	if _, err := os.Stat(resumePath); err == nil {
		loadPath = resumePath
		sum.Resumed = true
		e.console.Muted("Resuming from existing file: %s", resumePath)
	}
	col, err := geojson.Load(loadPath)
	if err != nil {
		return nil, err
	}
	sum.LoadedFrom = loadPath
	sum.Total = len(col.Features)
	sum.AlreadyResolved = col.CountResolved()

	// AUTO_FILLING: previously resolved names apply without a prompt.
	sum.State = StateAutoFilling
	for _, f := range col.Unresolved() {
		name := f.Name()
		if name == "" {
			continue
		}
		if amenity, ok := e.cache.Get(name); ok {
			f.SetAmenity(amenity)
			sum.FilledFromCache++
		}
	}
	if sum.FilledFromCache > 0 {
		if err := geojson.Save(resumePath, col); err != nil {
			return nil, err
		}
	}

	unresolved := col.Unresolved()
	sum.Remaining = len(unresolved)
	e.console.Muted("%d features: %d already resolved, %d filled from cache, %d remaining",
		sum.Total, sum.AlreadyResolved, sum.FilledFromCache, sum.Remaining)

	if len(unresolved) == 0 {
		sum.State = StateComplete
		e.console.OK("All features already annotated in %s", resumePath)
		return sum, nil
	}

	// INTERACTIVE: one feature at a time, dataset order.
	sum.State = StateInteractive
	total := len(unresolved)
	for i, f := range unresolved {
		coords, err := f.Coordinates()
		if err != nil {
			// Malformed geometry aborts the dataset run; silently
			// skipping would hide broken source data.
			return nil, err
		}

		e.console.Divider()
		e.console.Progress(i+1, total)
		e.console.Field("Name", displayName(f))
		e.console.Field("Coords", coords)
		e.console.Field("Current amenity", f.Amenity())
		e.console.Menu("Available amenities (from all cities):", e.vocabulary)

		answer, quit, err := AskAmenity(e.console, "Enter amenity (number or text, 'q' to quit): ", e.vocabulary)
		if err != nil {
			return nil, err
		}
		if quit {
			if err := geojson.Save(resumePath, col); err != nil {
				return nil, err
			}
			sum.State = StatePaused
			sum.Remaining = total - i
			e.console.Warn("Quitting... progress saved.")
			return sum, nil
		}

		f.SetAmenity(answer)
		sum.Prompted++
		sum.Remaining--
		if err := geojson.Save(resumePath, col); err != nil {
			return nil, err
		}
		if name := f.Name(); name != "" {
			if err := e.cache.Put(name, answer); err != nil {
				return nil, err
			}
		}
		e.console.Muted("Progress saved to: %s", resumePath)
	}

	sum.State = StateComplete
	e.console.OK("Finished session (all amenities filled in %s)", resumePath)
	return sum, nil
}

func displayName(f *geojson.Feature) string {
	if name := f.Name(); name != "" {
		return name
	}
	return "Unnamed"
}
