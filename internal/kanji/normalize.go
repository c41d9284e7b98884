package kanji

import (
	"strings"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
)

const listSeparator = ", "

// JoinMeanings renders meanings as a single comma-separated translation,
// in source order. Each item is trimmed; nothing is dropped.
func JoinMeanings(meanings []string) string {
	return strings.Join(mapItems(meanings, strings.TrimSpace), listSeparator)
}

// FormatReadings renders readings as "a, b" with quote characters and
// enclosing brackets stripped, so values copied from list literals such
// as "['ひ', 'び']" come out clean.
func FormatReadings(readings []string) string {
	return StripDecoration(strings.Join(mapItems(readings, StripDecoration), listSeparator))
}

// StripDecoration removes quote characters anywhere in s and square
// brackets at either end.
func StripDecoration(s string) string {
	s = strings.NewReplacer(`'`, "", `"`, "").Replace(s)
	s = strings.TrimLeft(s, "[")
	s = strings.TrimRight(s, "]")
	return strings.TrimSpace(s)
}

// TrimRadicalMeaning strips trailing commas and whitespace. It returns nil
// for nil input or when nothing is left.
func TrimRadicalMeaning(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimRight(strings.TrimSpace(*s), ", ")
	if v == "" {
		return nil
	}
	return &v
}

// Normalize derives the display fields of an enriched record. Records
// without enrichment keep every display field nil.
func Normalize(rec *domain.KanjiRecord, tr *kana.Transliterator) {
	if !rec.Enriched {
		return
	}

	rec.Translation = nonEmpty(JoinMeanings(rec.Meanings))
	rec.KunDisplay = nonEmpty(FormatReadings(rec.KunReadings))
	rec.OnDisplay = nonEmpty(FormatReadings(rec.OnReadings))
	rec.RadicalMeaning = TrimRadicalMeaning(rec.RadicalMeaning)

	if tr != nil {
		rec.KunRomaji = tr.RomanizePtr(rec.KunDisplay)
		rec.OnRomaji = tr.RomanizePtr(rec.OnDisplay)
	}
}

// NormalizeAll applies Normalize to every record.
func NormalizeAll(records []domain.KanjiRecord, tr *kana.Transliterator) {
	for i := range records {
		Normalize(&records[i], tr)
	}
}

func mapItems(items []string, clean func(string) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = clean(it)
	}
	return out
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
