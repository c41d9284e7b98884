package pipeline

import (
	"time"

	"github.com/heartmarshall/nihongo-dataset/internal/config"
)

// Config holds the pipeline settings taken from the application config.
type Config struct {
	VocabularyPath string
	OutputDir      string
	MetricsPath    string
	DryRun         bool
	SkipEnrich     bool
	Persist        bool
	ReuseEnriched  bool
	Workers        int
	FetchTimeout   time.Duration
}

// ConfigFrom builds a pipeline Config from the loaded application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		VocabularyPath: cfg.Pipeline.VocabularyPath,
		OutputDir:      cfg.Pipeline.OutputDir,
		MetricsPath:    cfg.Metrics.TextfilePath,
		DryRun:         cfg.Pipeline.DryRun,
		SkipEnrich:     cfg.Pipeline.SkipEnrich,
		Persist:        cfg.Pipeline.Persist,
		ReuseEnriched:  cfg.Pipeline.ReuseEnriched,
		Workers:        cfg.Enrichment.Workers,
		FetchTimeout:   cfg.Enrichment.FetchTimeout,
	}
}
