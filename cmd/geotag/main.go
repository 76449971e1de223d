package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"geotag/internal/cache"
	"geotag/internal/config"
	"geotag/internal/version"
	"geotag/internal/vocab"
	"geotag/internal/workspace"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "geotag",
	Short: "geotag - resumable amenity annotation for GeoJSON datasets",
	Long: `geotag walks per-city GeoJSON datasets and helps a reviewer assign
amenity labels with as little repeated typing as possible: repeated
names are resolved once up front, previously answered names auto-fill
from a persistent cache, and every answer is saved immediately so a
session can be interrupted and resumed at any time.`,
	Version: version.Full(),
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("geotag %s\n", version.Full())
		if version.GitCommit != "unknown" {
			fmt.Printf("Git commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "unknown" {
			fmt.Printf("Build date: %s\n", version.BuildDate)
		}
		fmt.Printf("Go version: %s\n", version.GoVersion)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "geotag.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(retagCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	if verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Println("Verbose logging enabled")
	}
}

// app bundles the pieces every data command needs.
type app struct {
	cfg    *config.Config
	ws     *workspace.Workspace
	store  *cache.Store
	logger *log.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	ws, err := workspace.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.Database
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(ws.Root(), dbPath)
	}
	store, err := cache.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, ws: ws, store: store, logger: log.Default()}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Printf("WARNING: failed to close database: %v", err)
	}
}

// canonicalVocabulary aggregates every city's raw amenity list and
// reduces it to the canonical menu shared by all prompts.
func (a *app) canonicalVocabulary() ([]string, error) {
	cities, _, err := a.ws.Cities(nil)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(cities))
	for _, city := range cities {
		paths = append(paths, a.ws.VocabularyFile(city, a.cfg.Vocabulary.File))
	}
	raw, err := vocab.LoadAll(paths)
	if err != nil {
		return nil, err
	}

	var diag *log.Logger
	if verbose {
		diag = a.logger
	}
	reducer := vocab.NewReducer(a.cfg.Vocabulary.SimilarityThreshold, diag)
	return reducer.Reduce(raw), nil
}

// assignedCities resolves the processing order, warning about
// configured cities whose directory is missing.
func (a *app) assignedCities() ([]string, error) {
	cities, missing, err := a.ws.Cities(a.cfg.Cities)
	if err != nil {
		return nil, err
	}
	for _, m := range missing {
		a.logger.Printf("WARNING: configured city %q has no directory under %s", m, a.ws.Root())
	}
	return cities, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
