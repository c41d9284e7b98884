package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres"
	kanjirepo "github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres/kanji"
	"github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres/run"
	"github.com/heartmarshall/nihongo-dataset/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/nihongo-dataset/internal/adapter/provider/jisho"
	"github.com/heartmarshall/nihongo-dataset/internal/adapter/provider/kanjiapi"
	"github.com/heartmarshall/nihongo-dataset/internal/app/pipeline"
	"github.com/heartmarshall/nihongo-dataset/internal/config"
	"github.com/heartmarshall/nihongo-dataset/internal/dataset"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
	"github.com/heartmarshall/nihongo-dataset/internal/metrics"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

// Compile-time interface assertions.
var (
	_ pipeline.VocabularyRepo = (*vocabulary.Repo)(nil)
	_ pipeline.KanjiRepo      = (*kanjirepo.Repo)(nil)
	_ pipeline.RunRepo        = (*run.Repo)(nil)
	_ pipeline.TxManager      = (*postgres.TxManager)(nil)
)

// Overrides are command-line values applied on top of the loaded config.
type Overrides struct {
	DryRun     bool
	SkipEnrich bool
	OutputDir  string
}

// Run is the application entry point. It loads configuration, wires the
// provider, kana table and optional database, and runs the pipeline once.
func Run(ctx context.Context, ov Overrides) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyOverrides(cfg, ov)

	logger := NewLogger(cfg.Log)

	logger.Info("starting pipeline",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("provider", cfg.Enrichment.Provider),
	)

	table, err := loadKanaTable(cfg.Pipeline.KanaTablePath)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{
		Table:   table,
		Metrics: metrics.New(),
	}
	if !cfg.Pipeline.SkipEnrich {
		deps.Provider = NewProvider(cfg.Enrichment, logger)
	}

	persist := cfg.Pipeline.Persist && !cfg.Pipeline.DryRun
	if cfg.Database.DSN != "" && (persist || cfg.Pipeline.ReuseEnriched) {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return err
		}

		deps.Vocabulary = vocabulary.New(pool)
		deps.Kanji = kanjirepo.New(pool)
		deps.Runs = run.New(pool)
		deps.Tx = postgres.NewTxManager(pool)
	}

	p := pipeline.New(logger, deps, pipeline.ConfigFrom(cfg))
	if err := p.Run(ctx); err != nil {
		return err
	}

	if p.HasErrors() {
		summary := p.Summary()
		logger.Warn("pipeline completed with enrichment failures",
			slog.Int("enrich_failed", summary.EnrichFailedCount),
			slog.Int("kanji", summary.KanjiCount),
		)
	}
	return nil
}

// NewProvider returns the kanji provider named by cfg.Provider. Validate
// has already rejected unknown names; anything else falls back to jisho.
func NewProvider(cfg config.EnrichmentConfig, logger *slog.Logger) provider.KanjiProvider {
	switch cfg.Provider {
	case config.ProviderKanjiAPI:
		return kanjiapi.NewProviderWithURL(cfg.BaseURL, cfg.UserAgent, logger)
	default:
		return jisho.NewProviderWithURL(cfg.BaseURL, cfg.UserAgent, logger)
	}
}

func applyOverrides(cfg *config.Config, ov Overrides) {
	if ov.DryRun {
		cfg.Pipeline.DryRun = true
	}
	if ov.SkipEnrich {
		cfg.Pipeline.SkipEnrich = true
	}
	if ov.OutputDir != "" {
		cfg.Pipeline.OutputDir = ov.OutputDir
	}
}

func loadKanaTable(path string) (*kana.Table, error) {
	if path == "" {
		return kana.Default(), nil
	}
	rows, err := dataset.ReadKanaTableFile(path)
	if err != nil {
		return nil, err
	}
	table, err := kana.NewTable(rows)
	if err != nil {
		return nil, fmt.Errorf("kana table %s: %w", path, err)
	}
	return table, nil
}
