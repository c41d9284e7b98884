package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// --- Vocabulary input ---

func TestReadVocabularyFile(t *testing.T) {
	entries, stats, err := ReadVocabularyFile(testdataPath(t, "jlpt_vocab_sample.csv"))
	if err != nil {
		t.Fatalf("ReadVocabularyFile returned error: %v", err)
	}

	if stats.Rows != 7 {
		t.Errorf("Rows = %d, want 7", stats.Rows)
	}
	if stats.SkippedBlank != 1 {
		t.Errorf("SkippedBlank = %d, want 1", stats.SkippedBlank)
	}
	if stats.UnknownLevel != 1 {
		t.Errorf("UnknownLevel = %d, want 1", stats.UnknownLevel)
	}
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Word != "日本" || first.Furigana != "にほん" || first.Translation != "Japan" || first.JLPTLevel != domain.JLPTN5 {
		t.Errorf("first entry = %+v", first)
	}

	// Blank furigana falls back to the word.
	if entries[2].Furigana != "きょう" {
		t.Errorf("fallback furigana = %q, want %q", entries[2].Furigana, "きょう")
	}

	// Half-width katakana is folded to full width.
	if entries[3].Furigana != "ガッコウ" {
		t.Errorf("normalized furigana = %q, want %q", entries[3].Furigana, "ガッコウ")
	}

	if entries[4].Translation != "coffee, brewed" || entries[4].JLPTLevel != domain.JLPTN4 {
		t.Errorf("quoted entry = %+v", entries[4])
	}

	// Unknown level degrades to empty.
	if entries[5].JLPTLevel != "" {
		t.Errorf("unknown level = %q, want empty", entries[5].JLPTLevel)
	}
}

func TestReadVocabulary_HeaderAliases(t *testing.T) {
	t.Parallel()

	in := "\ufeffJLPT_Level,Word,Translation\n5,水,water\n"
	entries, _, err := ReadVocabulary(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadVocabulary: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Word != "水" || e.Furigana != "水" || e.Translation != "water" || e.JLPTLevel != domain.JLPTN5 {
		t.Errorf("entry = %+v", e)
	}
}

func TestReadVocabulary_WordKeptRaw(t *testing.T) {
	t.Parallel()

	in := "word,furigana\nお\u3000茶,おちゃ\n\u3000 ,から\n"
	entries, stats, err := ReadVocabulary(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadVocabulary: %v", err)
	}
	if stats.SkippedBlank != 1 {
		t.Errorf("SkippedBlank = %d, want 1", stats.SkippedBlank)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].Word; got != "お\u3000茶" || utf8.RuneCountInString(got) != 3 {
		t.Errorf("Word = %q, want the raw cell with 3 characters", got)
	}
}

func TestReadVocabulary_InvalidReadingKept(t *testing.T) {
	t.Parallel()

	in := "word,furigana\n水,\xff\xfe\n"
	entries, stats, err := ReadVocabulary(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadVocabulary: %v", err)
	}
	if stats.InvalidReading != 1 {
		t.Errorf("InvalidReading = %d, want 1", stats.InvalidReading)
	}
	if entries[0].Furigana != "\xff\xfe" {
		t.Errorf("Furigana = %q, want raw bytes", entries[0].Furigana)
	}
}

func TestReadVocabulary_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"empty file", "", domain.ErrMissingInput},
		{"no word column", "furigana,english\nみず,water\n", domain.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := ReadVocabulary(strings.NewReader(tt.in))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadVocabularyFile_Missing(t *testing.T) {
	t.Parallel()

	_, _, err := ReadVocabularyFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("err = %v, want ErrMissingInput", err)
	}

	_, _, err = ReadVocabularyFile("")
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("empty path err = %v, want ErrMissingInput", err)
	}
}

// --- Outputs ---

func TestWriteVocabularyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", VocabularyFile)
	entries := []domain.VocabularyEntry{
		{Word: "今日", Furigana: "きょう", Translation: "today", JLPTLevel: domain.JLPTN5, Romaji: strPtr("kyou"), NumCharacters: 2, StrokeCount: 8},
		{Word: "水", Furigana: "\xff", Translation: "water, cold", NumCharacters: 1},
	}
	if err := WriteVocabularyFile(path, entries); err != nil {
		t.Fatalf("WriteVocabularyFile: %v", err)
	}

	rows := readCSV(t, path)
	want := [][]string{
		VocabularyHeader,
		{"今日", "N5", "today", "8", "kyou", "きょう", "2"},
		{"水", "", "water, cold", "0", "", "\xff", "1"},
	}
	assertRows(t, rows, want)

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".*"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestWriteKanji(t *testing.T) {
	t.Parallel()

	records := []domain.KanjiRecord{
		{
			Character: "日", Count: 2, Enriched: true, Strokes: intPtr(4),
			Translation: strPtr("day, sun"), KunDisplay: strPtr("ひ, び"), OnDisplay: strPtr("ニチ"),
			KunRomaji: strPtr("hi, bi"), OnRomaji: strPtr("nichi"),
			RadicalBasis: strPtr("日"), RadicalMeaning: strPtr("sun, day"),
		},
		{Character: "本", Count: 1},
	}

	var buf bytes.Buffer
	if err := WriteKanji(&buf, records); err != nil {
		t.Fatalf("WriteKanji: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		KanjiHeader,
		{"日", "2", "4", "day, sun", "ひ, び", "ニチ", "hi, bi", "nichi", "日", "sun, day"},
		{"本", "1", "", "", "", "", "", "", "", ""},
	}
	assertRows(t, rows, want)
}

// --- Kana table ---

func TestReadKanaTableFile(t *testing.T) {
	rows, err := ReadKanaTableFile(testdataPath(t, "kana_sample.csv"))
	if err != nil {
		t.Fatalf("ReadKanaTableFile: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0].Kana != "あ" || rows[0].Strokes != 3 || rows[0].Script != domain.ScriptHiragana {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[3].Kana != "きゃ" || rows[3].Romaji != "kya" || rows[3].Strokes != 0 {
		t.Errorf("digraph row = %+v", rows[3])
	}

	table, err := kana.NewTable(rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := table.Transliterator().Romanize("きゃあ"); got != "kyaa" {
		t.Errorf("Romanize = %q, want kyaa", got)
	}
}

func TestReadKanaTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"missing column", "kana,romaji,type\nあ,a,hiragana\n"},
		{"bad stroke count", "kana,romaji,type,stroke_count\nあ,a,hiragana,three\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ReadKanaTable(strings.NewReader(tt.in)); !errors.Is(err, domain.ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestKanaTable_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), KanaFile)
	want := kana.Default().Rows()
	if err := WriteKanaTableFile(path, want); err != nil {
		t.Fatalf("WriteKanaTableFile: %v", err)
	}

	got, err := ReadKanaTableFile(path)
	if err != nil {
		t.Fatalf("ReadKanaTableFile: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func assertRows(t *testing.T, got, want [][]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d: %q", len(got), len(want), got)
	}
	for i := range want {
		if strings.Join(got[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}
