// Package pipeline runs the dataset build end to end: read vocabulary,
// extract and enrich kanji, derive romaji and stroke counts, then write the
// cleaned tables to disk and, optionally, to PostgreSQL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/nihongo-dataset/internal/dataset"
	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
	"github.com/heartmarshall/nihongo-dataset/internal/kanji"
	"github.com/heartmarshall/nihongo-dataset/internal/lexicon"
	"github.com/heartmarshall/nihongo-dataset/internal/metrics"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
	"github.com/heartmarshall/nihongo-dataset/pkg/ctxutil"
)

// Phase names in execution order.
const (
	PhaseLoad    = "load"
	PhaseExtract = "extract"
	PhaseEnrich  = "enrich"
	PhaseDerive  = "derive"
	PhaseWrite   = "write"
	PhasePersist = "persist"
)

var allPhases = []string{PhaseLoad, PhaseExtract, PhaseEnrich, PhaseDerive, PhaseWrite, PhasePersist}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Processed int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Err       error
}

// Deps are the collaborators of a Pipeline. Provider may be nil when
// enrichment is skipped. The repositories and Tx are only used when
// persistence or enrichment reuse is enabled; Metrics may be nil.
type Deps struct {
	Table      *kana.Table
	Provider   provider.KanjiProvider
	Vocabulary VocabularyRepo
	Kanji      KanjiRepo
	Runs       RunRepo
	Tx         TxManager
	Metrics    *metrics.Metrics
}

// Pipeline orchestrates the dataset build.
type Pipeline struct {
	base    *slog.Logger
	log     *slog.Logger
	deps    Deps
	cfg     Config
	results map[string]PhaseResult

	runID      uuid.UUID
	startedAt  time.Time
	vocabulary []domain.VocabularyEntry
	kanji      []domain.KanjiRecord
	enriched   int
	failed     int
	unknown    int
}

// New creates a Pipeline. A nil Table falls back to kana.Default().
func New(log *slog.Logger, deps Deps, cfg Config) *Pipeline {
	if deps.Table == nil {
		deps.Table = kana.Default()
	}
	return &Pipeline{
		base:    log,
		log:     log.With("component", "pipeline"),
		deps:    deps,
		cfg:     cfg,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Failed > 0 {
			return true
		}
	}
	return false
}

// Vocabulary returns the derived vocabulary rows.
func (p *Pipeline) Vocabulary() []domain.VocabularyEntry { return p.vocabulary }

// Kanji returns the aggregated and normalized kanji records.
func (p *Pipeline) Kanji() []domain.KanjiRecord { return p.kanji }

// Summary describes a finished run.
func (p *Pipeline) Summary() domain.PipelineRun {
	run := domain.PipelineRun{
		ID:                p.runID,
		StartedAt:         p.startedAt,
		VocabularyCount:   len(p.vocabulary),
		KanjiCount:        len(p.kanji),
		EnrichedCount:     p.enriched,
		EnrichFailedCount: p.failed,
	}
	if p.deps.Provider != nil {
		run.Provider = p.deps.Provider.Name()
	}
	return run
}

// Run executes all phases in order. A phase error stops the run; failed
// kanji lookups and unknown characters are counted but never fatal.
func (p *Pipeline) Run(ctx context.Context) error {
	p.runID = uuid.New()
	p.startedAt = time.Now()
	ctx = ctxutil.WithRunID(ctx, p.runID)

	p.log.InfoContext(ctx, "pipeline started",
		slog.String("vocabulary_path", p.cfg.VocabularyPath),
		slog.Bool("dry_run", p.cfg.DryRun),
	)

	for _, phase := range allPhases {
		if err := p.runPhase(ctx, phase); err != nil {
			return err
		}
	}

	p.deps.Metrics.MarkSuccess(time.Now())
	if err := p.writeMetrics(); err != nil {
		p.log.WarnContext(ctx, "metrics export failed", slog.String("error", err.Error()))
	}

	p.log.InfoContext(ctx, "pipeline completed",
		slog.Int("vocabulary", len(p.vocabulary)),
		slog.Int("kanji", len(p.kanji)),
		slog.Int("enriched", p.enriched),
		slog.Int("enrich_failed", p.failed),
		slog.Int("unknown_characters", p.unknown),
		slog.Duration("duration", time.Since(p.startedAt)),
	)
	return nil
}

func (p *Pipeline) runPhase(ctx context.Context, phase string) error {
	ctx = ctxutil.WithPhase(ctx, phase)
	start := time.Now()
	p.log.DebugContext(ctx, "starting phase")

	var result PhaseResult
	switch phase {
	case PhaseLoad:
		result = p.load(ctx)
	case PhaseExtract:
		result = p.extract()
	case PhaseEnrich:
		result = p.enrich(ctx)
	case PhaseDerive:
		result = p.derive()
	case PhaseWrite:
		result = p.write()
	case PhasePersist:
		result = p.persist(ctx)
	}
	result.Duration = time.Since(start)
	p.results[phase] = result
	p.deps.Metrics.ObservePhase(phase, result.Duration)

	if result.Err != nil {
		p.log.ErrorContext(ctx, "phase failed",
			slog.String("error", result.Err.Error()),
			slog.Duration("duration", result.Duration),
		)
		if err := p.writeMetrics(); err != nil {
			p.log.WarnContext(ctx, "metrics export failed", slog.String("error", err.Error()))
		}
		return fmt.Errorf("pipeline: %s: %w", phase, result.Err)
	}

	p.log.InfoContext(ctx, "phase completed",
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

func (p *Pipeline) load(ctx context.Context) PhaseResult {
	entries, stats, err := dataset.ReadVocabularyFile(p.cfg.VocabularyPath)
	if err != nil {
		return PhaseResult{Err: err}
	}
	if stats.UnknownLevel > 0 || stats.InvalidReading > 0 {
		p.log.WarnContext(ctx, "vocabulary rows with degraded fields",
			slog.Int("unknown_level", stats.UnknownLevel),
			slog.Int("invalid_reading", stats.InvalidReading),
		)
	}
	p.vocabulary = entries
	return PhaseResult{Processed: len(entries), Skipped: stats.SkippedBlank}
}

func (p *Pipeline) extract() PhaseResult {
	words := make([]string, len(p.vocabulary))
	for i, e := range p.vocabulary {
		words[i] = e.Word
	}
	p.kanji = kanji.Extract(words)
	return PhaseResult{Processed: len(p.kanji)}
}

func (p *Pipeline) enrich(ctx context.Context) PhaseResult {
	if p.cfg.SkipEnrich || p.deps.Provider == nil || len(p.kanji) == 0 {
		return PhaseResult{Skipped: len(p.kanji)}
	}

	var cache kanji.Cache
	if p.cfg.ReuseEnriched && p.deps.Kanji != nil {
		cache = p.deps.Kanji
	}

	enricher := kanji.NewEnricher(p.base, p.deps.Provider, kanji.EnricherConfig{
		Workers: p.cfg.Workers,
		Timeout: p.cfg.FetchTimeout,
	}, p.deps.Metrics, cache)

	results, err := enricher.Enrich(ctx, kanji.Characters(p.kanji))
	p.enriched, p.failed = kanji.Apply(p.kanji, results)
	if err != nil {
		return PhaseResult{Processed: p.enriched, Failed: p.failed, Err: err}
	}
	return PhaseResult{Processed: p.enriched, Failed: p.failed}
}

func (p *Pipeline) derive() PhaseResult {
	tr := p.deps.Table.Transliterator()
	kanji.NormalizeAll(p.kanji, tr)

	index := lexicon.NewStrokeIndex(p.deps.Table, p.kanji)
	var result PhaseResult
	p.unknown = 0
	for i := range p.vocabulary {
		e := &p.vocabulary[i]
		e.Romaji = tr.RomanizePtr(&e.Furigana)
		if e.Romaji == nil {
			result.Skipped++
		}
		e.NumCharacters = utf8.RuneCountInString(e.Word)

		total, unknown := index.WordStrokesDetail(e.Word)
		e.StrokeCount = total
		p.unknown += unknown
		result.Processed++
	}
	p.deps.Metrics.SetUnknownCharacters(p.unknown)
	p.deps.Metrics.SetRows("vocabulary", len(p.vocabulary))
	p.deps.Metrics.SetRows("kanji", len(p.kanji))
	return result
}

func (p *Pipeline) write() PhaseResult {
	if p.cfg.DryRun {
		return PhaseResult{Skipped: 3}
	}

	dir := p.cfg.OutputDir
	if err := dataset.WriteVocabularyFile(filepath.Join(dir, dataset.VocabularyFile), p.vocabulary); err != nil {
		return PhaseResult{Err: err}
	}
	if err := dataset.WriteKanjiFile(filepath.Join(dir, dataset.KanjiFile), p.kanji); err != nil {
		return PhaseResult{Processed: 1, Err: err}
	}
	if err := dataset.WriteKanaTableFile(filepath.Join(dir, dataset.KanaFile), p.deps.Table.Rows()); err != nil {
		return PhaseResult{Processed: 2, Err: err}
	}
	return PhaseResult{Processed: 3}
}

func (p *Pipeline) persist(ctx context.Context) PhaseResult {
	if !p.cfg.Persist || p.cfg.DryRun {
		return PhaseResult{Skipped: 1}
	}
	if p.deps.Tx == nil || p.deps.Vocabulary == nil || p.deps.Kanji == nil || p.deps.Runs == nil {
		return PhaseResult{Err: errors.New("persistence requested without a database")}
	}

	var result PhaseResult
	err := p.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		run := p.Summary()
		if err := p.deps.Runs.Create(ctx, run); err != nil {
			return fmt.Errorf("create run: %w", err)
		}

		n, err := p.deps.Vocabulary.ReplaceAll(ctx, p.runID, p.vocabulary)
		if err != nil {
			return fmt.Errorf("replace vocabulary: %w", err)
		}
		result.Processed += n

		n, err = p.deps.Kanji.ReplaceAll(ctx, p.runID, p.kanji)
		if err != nil {
			return fmt.Errorf("replace kanji: %w", err)
		}
		result.Processed += n

		finished := time.Now()
		run.FinishedAt = &finished
		if err := p.deps.Runs.Finish(ctx, run); err != nil {
			return fmt.Errorf("finish run: %w", err)
		}
		return nil
	})
	if err != nil {
		return PhaseResult{Err: err}
	}
	return result
}

func (p *Pipeline) writeMetrics() error {
	if p.cfg.MetricsPath == "" || p.deps.Metrics == nil {
		return nil
	}
	return p.deps.Metrics.WriteTextfile(p.cfg.MetricsPath)
}
