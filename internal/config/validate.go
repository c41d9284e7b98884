package config

import (
	"fmt"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

// MaxWorkers caps the enrichment fan-out.
const MaxWorkers = 64

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Pipeline.VocabularyPath == "" {
		return fmt.Errorf("pipeline.vocabulary_path is required: %w", domain.ErrMissingInput)
	}
	if c.Pipeline.OutputDir == "" && !c.Pipeline.DryRun {
		return fmt.Errorf("pipeline.output_dir is required: %w", domain.ErrMissingInput)
	}
	if (c.Pipeline.Persist || c.Pipeline.ReuseEnriched) && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when persist or reuse_enriched is on: %w", domain.ErrMissingInput)
	}

	if err := c.Enrichment.validate(); err != nil {
		return fmt.Errorf("enrichment: %w", err)
	}

	if c.Database.DSN != "" && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

func (e *EnrichmentConfig) validate() error {
	switch e.Provider {
	case ProviderJisho, ProviderKanjiAPI:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", e.Provider, ProviderJisho, ProviderKanjiAPI)
	}
	if e.Workers < 1 || e.Workers > MaxWorkers {
		return fmt.Errorf("workers must be in 1..%d (got %d)", MaxWorkers, e.Workers)
	}
	if e.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %v)", e.FetchTimeout)
	}
	return nil
}
