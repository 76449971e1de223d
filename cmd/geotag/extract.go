package main

import (
	"fmt"

	"geotag/internal/config"
	"geotag/internal/extract"

	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <dataset.geojson>",
	Short: "Split a dataset into labeled/unlabeled files and list its amenities",
	Long: `Extract partitions a raw dataset by amenity presence into
<base>_with_amenity.geojson and <base>_no_amenity.geojson, and writes
the city's amenities list next to it. The _no_amenity output is what
the annotate command consumes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args[0])
	},
}

func runExtract(path string) error {
	// Only the vocabulary filename is needed here; no workspace or
	// database is opened for a one-shot partition.
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	res, err := extract.Run(path, cfg.Vocabulary.File)
	if err != nil {
		return err
	}

	fmt.Println("Unique amenities found:")
	for _, a := range res.Amenities {
		fmt.Printf("  %s\n", a)
	}
	fmt.Printf("\nSaved %d features to %s\n", res.WithAmenity, res.WithAmenityPath)
	fmt.Printf("Saved %d features to %s\n", res.NoAmenity, res.NoAmenityPath)
	fmt.Printf("Saved amenities list to %s\n", res.VocabularyPath)
	return nil
}
