package main

import (
	"fmt"

	"geotag/internal/cache"
	"geotag/internal/prompt"
	"geotag/internal/retag"

	"github.com/spf13/cobra"
)

// retagCmd represents the retag command
var retagCmd = &cobra.Command{
	Use:   "retag",
	Short: "Replace generic amenity labels with specific ones",
	Long: `Retag revisits annotated datasets and re-prompts every feature whose
amenity is one of the configured generic labels (retail_store by
default). Answers are free text and are cached in their own key
space, so a chain answered once is rewritten everywhere without
another prompt. Files are rewritten in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRetag()
	},
}

func runRetag() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	retagCache, err := a.store.Cache(cache.KindRetag)
	if err != nil {
		return err
	}
	cities, err := a.assignedCities()
	if err != nil {
		return err
	}

	console := prompt.NewStdio()
	tagger := retag.New(console, retagCache, a.cfg.Retag.GenericLabels)

	processed := 0
	for _, city := range cities {
		path, err := a.ws.FindDataset(city, a.cfg.ResumeSuffix)
		if err != nil {
			return err
		}
		if path == "" {
			a.logger.Printf("WARNING: no %s dataset in %s, skipping", a.cfg.ResumeSuffix, a.ws.CityDir(city))
			continue
		}

		console.Header("=== Retagging %s ===", city)
		runID, err := a.store.BeginRun("retag", city)
		if err != nil {
			return err
		}
		sum, err := tagger.Run(path)
		if err != nil {
			return fmt.Errorf("retagging %s: %w", city, err)
		}
		if err := a.store.FinishRun(runID, sum.AutoApplied+sum.Prompted); err != nil {
			return err
		}
		processed++
	}
	if processed == 0 {
		return fmt.Errorf("no annotated datasets found under %s", a.ws.Root())
	}

	console.OK("Retagging complete.")
	return nil
}
