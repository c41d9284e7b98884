package kanji

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/metrics"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

// fakeProvider answers from a fixed map; characters in fail return errs.
type fakeProvider struct {
	data  map[string]*provider.KanjiResult
	fail  map[string]error
	delay time.Duration

	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchKanji(ctx context.Context, kanji string) (*provider.KanjiResult, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxSeen.Load()
		if n <= cur || f.maxSeen.CompareAndSwap(cur, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.fail[kanji]; ok {
		return nil, err
	}
	return f.data[kanji], nil
}

type fakeCache struct {
	hits map[string]provider.KanjiResult
	err  error
}

func (c fakeCache) GetEnriched(_ context.Context, kanji []string) (map[string]provider.KanjiResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[string]provider.KanjiResult)
	for _, k := range kanji {
		if r, ok := c.hits[k]; ok {
			out[k] = r
		}
	}
	return out, nil
}

func TestEnricher_OneFailsOneSucceeds(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		data: map[string]*provider.KanjiResult{
			"日": {Kanji: "日", Strokes: intPtr(4), Meanings: []string{"day", "sun"}},
		},
		fail: map[string]error{"本": errors.New("unexpected status 500")},
	}
	e := NewEnricher(newTestLogger(), p, EnricherConfig{}, nil, nil)

	got, err := e.Enrich(context.Background(), []string{"日", "本"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Kanji != "日" || !got[0].OK() || *got[0].Info.Strokes != 4 {
		t.Errorf("got[0] = %+v, want enriched 日", got[0])
	}
	if got[1].Kanji != "本" || got[1].OK() || got[1].Err == nil {
		t.Errorf("got[1] = %+v, want failure for 本", got[1])
	}

	records := Extract([]string{"日本"})
	enriched, failed := Apply(records, got)
	if enriched != 1 || failed != 1 {
		t.Fatalf("Apply = (%d, %d), want (1, 1)", enriched, failed)
	}
	if !records[0].Enriched || records[0].Strokes == nil || *records[0].Strokes != 4 {
		t.Errorf("日 = %+v, want enriched with 4 strokes", records[0])
	}
	r := records[1]
	if r.Enriched || r.Strokes != nil || r.Meanings != nil || r.RadicalBasis != nil || r.RadicalMeaning != nil {
		t.Errorf("本 = %+v, want all enrichment fields empty", r)
	}
	if r.Count != 1 {
		t.Errorf("本 count = %d, want 1", r.Count)
	}
}

func TestEnricher_NotFoundIsFailure(t *testing.T) {
	t.Parallel()

	e := NewEnricher(newTestLogger(), &fakeProvider{}, EnricherConfig{}, nil, nil)
	got, err := e.Enrich(context.Background(), []string{"鬱"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if got[0].OK() || !errors.Is(got[0].Err, domain.ErrNotFound) {
		t.Errorf("got %+v, want ErrNotFound", got[0])
	}
}

func TestEnricher_ResultsAlignedWithInput(t *testing.T) {
	t.Parallel()

	chars := []string{"一", "二", "三", "四", "五", "六", "七", "八", "九", "十", "百", "千"}
	data := make(map[string]*provider.KanjiResult, len(chars))
	for i, c := range chars {
		data[c] = &provider.KanjiResult{Kanji: c, Strokes: intPtr(i + 1)}
	}
	p := &fakeProvider{data: data, delay: 5 * time.Millisecond}
	e := NewEnricher(newTestLogger(), p, EnricherConfig{Workers: 4}, nil, nil)

	got, err := e.Enrich(context.Background(), chars)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	for i, c := range chars {
		if got[i].Kanji != c || !got[i].OK() || *got[i].Info.Strokes != i+1 {
			t.Errorf("got[%d] = %+v, want %s", i, got[i], c)
		}
	}
	if peak := p.maxSeen.Load(); peak > 4 {
		t.Errorf("max in flight = %d, want <= 4", peak)
	}
	if calls := p.calls.Load(); calls != int32(len(chars)) {
		t.Errorf("calls = %d, want %d (no retries)", calls, len(chars))
	}
}

func TestEnricher_DefaultWorkerLimit(t *testing.T) {
	t.Parallel()

	chars := make([]string, 40)
	data := make(map[string]*provider.KanjiResult, len(chars))
	for i := range chars {
		c := string(rune(0x4E00 + i))
		chars[i] = c
		data[c] = &provider.KanjiResult{Kanji: c}
	}
	p := &fakeProvider{data: data, delay: 10 * time.Millisecond}
	e := NewEnricher(newTestLogger(), p, EnricherConfig{}, nil, nil)

	got, err := e.Enrich(context.Background(), chars)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	for i := range chars {
		if !got[i].OK() {
			t.Errorf("got[%d] = %+v, want ok", i, got[i])
		}
	}
	if peak := p.maxSeen.Load(); peak > DefaultWorkers {
		t.Errorf("max in flight = %d, want <= %d", peak, DefaultWorkers)
	}
	if peak := p.maxSeen.Load(); peak < 2 {
		t.Errorf("max in flight = %d, lookups did not run concurrently", peak)
	}
}

func TestEnricher_PerCallTimeout(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{
		data:  map[string]*provider.KanjiResult{"遅": {Kanji: "遅"}},
		delay: time.Second,
	}
	m := metrics.New()
	e := NewEnricher(newTestLogger(), p, EnricherConfig{Timeout: 20 * time.Millisecond}, m, nil)

	got, err := e.Enrich(context.Background(), []string{"遅"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if got[0].OK() || !errors.Is(got[0].Err, context.DeadlineExceeded) {
		t.Errorf("got %+v, want deadline exceeded", got[0])
	}
	if n := testutil.ToFloat64(m.FetchOutcome.WithLabelValues("fake", OutcomeTimeout)); n != 1 {
		t.Errorf("timeout outcomes = %v, want 1", n)
	}
}

func TestEnricher_ParentCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProvider{data: map[string]*provider.KanjiResult{"日": {Kanji: "日"}}, delay: time.Second}
	e := NewEnricher(newTestLogger(), p, EnricherConfig{}, nil, nil)

	got, err := e.Enrich(ctx, []string{"日"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(got) != 1 || got[0].OK() {
		t.Errorf("got %+v, want one failed result", got)
	}
}

func TestEnricher_PanicBecomesFailure(t *testing.T) {
	t.Parallel()

	e := NewEnricher(newTestLogger(), panicProvider{}, EnricherConfig{}, nil, nil)
	got, err := e.Enrich(context.Background(), []string{"日", "月"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	for _, g := range got {
		if g.OK() || g.Err == nil {
			t.Errorf("%s: want failure, got %+v", g.Kanji, g)
		}
	}
}

type panicProvider struct{}

func (panicProvider) Name() string { return "panic" }
func (panicProvider) FetchKanji(context.Context, string) (*provider.KanjiResult, error) {
	panic("malformed page")
}

func TestEnricher_Cache(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{data: map[string]*provider.KanjiResult{"本": {Kanji: "本", Strokes: intPtr(5)}}}
	cache := fakeCache{hits: map[string]provider.KanjiResult{"日": {Kanji: "日", Strokes: intPtr(4)}}}
	m := metrics.New()
	e := NewEnricher(newTestLogger(), p, EnricherConfig{}, m, cache)

	got, err := e.Enrich(context.Background(), []string{"日", "本"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if !got[0].Cached || !got[0].OK() || *got[0].Info.Strokes != 4 {
		t.Errorf("got[0] = %+v, want cached 日", got[0])
	}
	if got[1].Cached || !got[1].OK() {
		t.Errorf("got[1] = %+v, want fetched 本", got[1])
	}
	if calls := p.calls.Load(); calls != 1 {
		t.Errorf("provider calls = %d, want 1", calls)
	}
	if n := testutil.ToFloat64(m.FetchOutcome.WithLabelValues("fake", OutcomeCached)); n != 1 {
		t.Errorf("cached outcomes = %v, want 1", n)
	}
}

func TestEnricher_CacheErrorFallsBackToProvider(t *testing.T) {
	t.Parallel()

	p := &fakeProvider{data: map[string]*provider.KanjiResult{"日": {Kanji: "日"}}}
	e := NewEnricher(newTestLogger(), p, EnricherConfig{}, nil, fakeCache{err: errors.New("db down")})

	got, err := e.Enrich(context.Background(), []string{"日"})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if !got[0].OK() || got[0].Cached {
		t.Errorf("got %+v, want fetched result", got[0])
	}
}

func TestEnricher_Empty(t *testing.T) {
	t.Parallel()

	e := NewEnricher(newTestLogger(), &fakeProvider{}, EnricherConfig{}, nil, nil)
	got, err := e.Enrich(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Enrich(nil) = %v, %v", got, err)
	}
}

func TestApply_IgnoresUnknownResults(t *testing.T) {
	t.Parallel()

	records := Extract([]string{"日"})
	enriched, failed := Apply(records, []Enrichment{
		{Kanji: "月", Info: &provider.KanjiResult{Kanji: "月"}},
	})
	if enriched != 0 || failed != 1 {
		t.Errorf("Apply = (%d, %d), want (0, 1)", enriched, failed)
	}
	if records[0].Enriched {
		t.Error("日 must stay unenriched")
	}
}
