package kanji

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/metrics"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

const (
	// DefaultWorkers is the number of lookups allowed in flight at once.
	DefaultWorkers = 10
	// DefaultFetchTimeout bounds a single lookup.
	DefaultFetchTimeout = 10 * time.Second
)

// Lookup outcomes reported to metrics.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
	OutcomeCached   = "cached"
)

// Enrichment is the outcome of one kanji lookup. Exactly one of Info and
// Err is set.
type Enrichment struct {
	Kanji    string
	Info     *provider.KanjiResult
	Err      error
	Cached   bool
	Duration time.Duration
}

// OK reports whether the lookup produced data.
func (e Enrichment) OK() bool { return e.Err == nil && e.Info != nil }

// Cache returns kanji that were enriched by an earlier run. Missing
// characters are simply absent from the map.
type Cache interface {
	GetEnriched(ctx context.Context, kanji []string) (map[string]provider.KanjiResult, error)
}

// EnricherConfig tunes the fetch fan-out.
type EnricherConfig struct {
	Workers int
	Timeout time.Duration
}

// Enricher fetches kanji information with bounded concurrency.
type Enricher struct {
	log      *slog.Logger
	provider provider.KanjiProvider
	cfg      EnricherConfig
	metrics  *metrics.Metrics
	cache    Cache
}

// NewEnricher creates an Enricher. Zero config values fall back to
// DefaultWorkers and DefaultFetchTimeout. m and cache may be nil.
func NewEnricher(log *slog.Logger, p provider.KanjiProvider, cfg EnricherConfig, m *metrics.Metrics, cache Cache) *Enricher {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Enricher{
		log:      log.With("component", "enricher", "provider", p.Name()),
		provider: p,
		cfg:      cfg,
		metrics:  m,
		cache:    cache,
	}
}

// Enrich looks up every character in chars. The result slice is aligned
// with chars: out[i] always belongs to chars[i]. A failed lookup is
// recorded in its Enrichment and never stops the others, and nothing is
// retried. The returned error is non-nil only when ctx ends before the
// batch completes; out is still fully populated in that case.
func (e *Enricher) Enrich(ctx context.Context, chars []string) ([]Enrichment, error) {
	out := make([]Enrichment, len(chars))
	cached := e.loadCache(ctx, chars)

	g := new(errgroup.Group)
	g.SetLimit(e.cfg.Workers)

	for i, ch := range chars {
		if info, ok := cached[ch]; ok {
			out[i] = Enrichment{Kanji: ch, Info: &info, Cached: true}
			e.metrics.ObserveFetch(e.provider.Name(), OutcomeCached, 0)
			continue
		}
		g.Go(func() error {
			out[i] = e.fetch(ctx, ch)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return out, fmt.Errorf("kanji: enrich: %w", err)
	}
	return out, nil
}

func (e *Enricher) loadCache(ctx context.Context, chars []string) map[string]provider.KanjiResult {
	if e.cache == nil || len(chars) == 0 {
		return nil
	}
	cached, err := e.cache.GetEnriched(ctx, chars)
	if err != nil {
		e.log.WarnContext(ctx, "enrichment cache unavailable", slog.String("error", err.Error()))
		return nil
	}
	e.log.InfoContext(ctx, "enrichment cache loaded", slog.Int("hits", len(cached)), slog.Int("requested", len(chars)))
	return cached
}

func (e *Enricher) fetch(ctx context.Context, ch string) (res Enrichment) {
	res.Kanji = ch
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res.Info = nil
			res.Err = fmt.Errorf("kanji: fetch %s: panic: %v", ch, r)
		}
		res.Duration = time.Since(start)

		outcome := outcomeOf(res.Err)
		e.metrics.ObserveFetch(e.provider.Name(), outcome, res.Duration)
		if res.Err != nil {
			e.log.WarnContext(ctx, "kanji lookup failed",
				slog.String("kanji", ch),
				slog.String("outcome", outcome),
				slog.String("error", res.Err.Error()),
			)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	info, err := e.provider.FetchKanji(callCtx, ch)
	switch {
	case err != nil:
		res.Err = fmt.Errorf("kanji: fetch %s: %w", ch, err)
	case info == nil:
		res.Err = fmt.Errorf("kanji: fetch %s: %w", ch, domain.ErrNotFound)
	default:
		res.Info = info
	}
	return res
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

// Apply merges results into records by character. Records without a
// successful result keep nil enrichment fields. It returns the number of
// records enriched and the number left without data.
func Apply(records []domain.KanjiRecord, results []Enrichment) (enriched, failed int) {
	byChar := make(map[string]Enrichment, len(results))
	for _, r := range results {
		byChar[r.Kanji] = r
	}

	for i := range records {
		rec := &records[i]
		res, ok := byChar[rec.Character]
		if !ok || !res.OK() {
			failed++
			continue
		}
		info := res.Info
		rec.Enriched = true
		rec.Strokes = info.Strokes
		rec.Meanings = info.Meanings
		rec.KunReadings = info.KunReadings
		rec.OnReadings = info.OnReadings
		rec.RadicalBasis = info.RadicalBasis
		rec.RadicalMeaning = info.RadicalMeaning
		enriched++
	}
	return enriched, failed
}
