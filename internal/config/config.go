package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full geotag configuration. All fields have working
// defaults so a missing config file is not an error.
type Config struct {
	// DataDir is the workspace root holding one subdirectory per city.
	DataDir string `yaml:"data_dir"`

	// Cities is the assigned processing order. Empty means "every
	// subdirectory of DataDir", sorted.
	Cities []string `yaml:"cities"`

	// Database is the sqlite file holding annotation caches and run
	// history, relative to DataDir unless absolute.
	Database string `yaml:"database"`

	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Retag      RetagConfig      `yaml:"retag"`

	// SourceSuffix marks the unlabeled dataset file for a city.
	SourceSuffix string `yaml:"source_suffix"`

	// ResumeSuffix replaces SourceSuffix to derive the resume path.
	ResumeSuffix string `yaml:"resume_suffix"`
}

// VocabularyConfig controls canonical vocabulary reduction.
type VocabularyConfig struct {
	// File is the per-city raw amenity list filename.
	File string `yaml:"file"`

	// SimilarityThreshold is the minimum lexical similarity for two
	// amenity strings to fold into one cluster.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// RetagConfig controls the retag pass.
type RetagConfig struct {
	// GenericLabels are amenity values considered too vague to keep.
	// Matched case-insensitively against the stored amenity.
	GenericLabels []string `yaml:"generic_labels"`
}

func (c *Config) defaults() {
	if c.DataDir == "" {
		c.DataDir = "geojson"
	}
	if c.Database == "" {
		c.Database = "geotag.db"
	}
	if c.Vocabulary.File == "" {
		c.Vocabulary.File = "amenities.txt"
	}
	if c.Vocabulary.SimilarityThreshold <= 0 {
		c.Vocabulary.SimilarityThreshold = 0.85
	}
	if len(c.Retag.GenericLabels) == 0 {
		c.Retag.GenericLabels = []string{"retail_store", "retail store"}
	}
	if c.SourceSuffix == "" {
		c.SourceSuffix = "_no_amenity.geojson"
	}
	if c.ResumeSuffix == "" {
		c.ResumeSuffix = "_annotated.geojson"
	}
}

func (c *Config) validate() error {
	if c.Vocabulary.SimilarityThreshold > 1 {
		return fmt.Errorf("vocabulary.similarity_threshold must be in (0, 1], got %v", c.Vocabulary.SimilarityThreshold)
	}
	if c.SourceSuffix == c.ResumeSuffix {
		return fmt.Errorf("source_suffix and resume_suffix must differ (both %q)", c.SourceSuffix)
	}
	for _, l := range c.Retag.GenericLabels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("retag.generic_labels must not contain blank entries")
		}
	}
	return nil
}

// Load reads a YAML config file, applies defaults, and validates.
// A missing file yields the default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
