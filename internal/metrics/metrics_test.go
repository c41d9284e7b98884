package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveFetch(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveFetch("jisho", "ok", 120*time.Millisecond)
	m.ObserveFetch("jisho", "ok", 80*time.Millisecond)
	m.ObserveFetch("jisho", "error", time.Second)
	m.ObserveFetch("jisho", "cached", 0)

	if got := testutil.ToFloat64(m.FetchOutcome.WithLabelValues("jisho", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FetchOutcome.WithLabelValues("jisho", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.FetchLatency); got != 1 {
		t.Errorf("latency series = %d, want 1", got)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveFetch("jisho", "ok", time.Second)
	m.ObservePhase("derive", time.Second)
	m.SetRows("kanji", 3)
	m.SetUnknownCharacters(1)
	m.MarkSuccess(time.Now())
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil WriteTextfile: %v", err)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetRows("vocabulary", 42)
	m.ObservePhase("extract", 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "nihongo.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `nihongo_pipeline_rows{dataset="vocabulary"} 42`) {
		t.Errorf("textfile missing rows gauge:\n%s", out)
	}
	if !strings.Contains(out, `nihongo_pipeline_phase_duration_seconds{phase="extract"} 1.5`) {
		t.Errorf("textfile missing phase gauge:\n%s", out)
	}
}
