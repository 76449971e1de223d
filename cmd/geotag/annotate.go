package main

import (
	"fmt"
	"os"

	"geotag/internal/annotate"
	"geotag/internal/cache"
	"geotag/internal/geojson"
	"geotag/internal/prompt"
	"geotag/internal/workspace"

	"github.com/spf13/cobra"
)

// annotateCmd represents the annotate command
var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Interactively label unresolved features, city by city",
	Long: `Annotate walks each assigned city's dataset in order. Repeated names
across the whole batch are resolved first with a single prompt each;
cached answers then auto-fill, and whatever remains is prompted one
feature at a time. Progress is saved after every answer, so 'q'
pauses a city without losing anything and a later run resumes where
this one stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnnotate()
	},
}

func runAnnotate() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	vocabulary, err := a.canonicalVocabulary()
	if err != nil {
		return err
	}
	annCache, err := a.store.Cache(cache.KindAnnotate)
	if err != nil {
		return err
	}
	cities, err := a.assignedCities()
	if err != nil {
		return err
	}

	console := prompt.NewStdio()

	// Locate every city's dataset up front so chain detection sees
	// the whole batch, not one city at a time.
	type cityDataset struct {
		city   string
		source string
		resume string
	}
	var datasets []cityDataset
	var batch []*geojson.Feature
	for _, city := range cities {
		source, err := a.ws.FindDataset(city, a.cfg.SourceSuffix)
		if err != nil {
			return err
		}
		if source == "" {
			a.logger.Printf("WARNING: no %s dataset in %s, skipping", a.cfg.SourceSuffix, a.ws.CityDir(city))
			continue
		}
		resume := workspace.ResumePath(source, a.cfg.SourceSuffix, a.cfg.ResumeSuffix)
		datasets = append(datasets, cityDataset{city: city, source: source, resume: resume})

		col, err := loadPreferResume(source, resume)
		if err != nil {
			return err
		}
		batch = append(batch, col.Features...)
	}
	if len(datasets) == 0 {
		return fmt.Errorf("no datasets found under %s", a.ws.Root())
	}

	detector := annotate.NewDetector(console, annCache, vocabulary)
	prompted, err := detector.Resolve(annotate.BuildIndex(batch))
	if err != nil {
		return err
	}
	if prompted > 0 {
		console.OK("Resolved %d repeated names; they will auto-fill below.", prompted)
	}

	engine := annotate.NewEngine(console, annCache, vocabulary)
	for _, ds := range datasets {
		console.Header("=== Processing %s ===", ds.city)

		runID, err := a.store.BeginRun("annotate", ds.city)
		if err != nil {
			return err
		}
		sum, err := engine.Run(ds.source, ds.resume)
		if err != nil {
			return fmt.Errorf("annotating %s: %w", ds.city, err)
		}
		if err := a.store.FinishRun(runID, sum.FilledFromCache+sum.Prompted); err != nil {
			return err
		}
		if sum.State == annotate.StatePaused {
			console.Muted("%s paused with %d features remaining.", ds.city, sum.Remaining)
		}
	}
	return nil
}

// loadPreferResume loads the resume file when it exists, mirroring the
// engine's own LOADING branch so the chain index reflects progress.
func loadPreferResume(source, resume string) (*geojson.Collection, error) {
	if _, err := os.Stat(resume); err == nil {
		return geojson.Load(resume)
	}
	return geojson.Load(source)
}
