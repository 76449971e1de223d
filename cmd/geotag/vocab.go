package main

import (
	"fmt"
	"log"

	"geotag/internal/vocab"

	"github.com/spf13/cobra"
)

var vocabShowClusters bool

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the reduced canonical amenity vocabulary",
	Long: `Vocab aggregates every city's raw amenity list, folds near-duplicate
spellings together, and prints the canonical menu exactly as the
annotate command will offer it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVocab()
	},
}

func init() {
	vocabCmd.Flags().BoolVar(&vocabShowClusters, "clusters", false, "show the merged members of each cluster")
}

func runVocab() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	cities, _, err := a.ws.Cities(nil)
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(cities))
	for _, city := range cities {
		paths = append(paths, a.ws.VocabularyFile(city, a.cfg.Vocabulary.File))
	}
	raw, err := vocab.LoadAll(paths)
	if err != nil {
		return err
	}

	var diag *log.Logger
	if verbose {
		diag = a.logger
	}
	reducer := vocab.NewReducer(a.cfg.Vocabulary.SimilarityThreshold, diag)
	clusters := reducer.Clusters(raw)

	fmt.Printf("%d raw amenity strings across %d cities reduced to %d canonical labels:\n\n",
		len(raw), len(cities), len(clusters))
	for i, c := range clusters {
		fmt.Printf("%d. %s\n", i+1, c.Canonical)
		if vocabShowClusters && len(c.Members) > 1 {
			for _, m := range c.Members[1:] {
				fmt.Printf("     ~ %s\n", m)
			}
		}
	}
	return nil
}
