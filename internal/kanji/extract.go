// Package kanji extracts kanji from vocabulary, enriches them through an
// external provider and normalizes the enriched fields for export.
package kanji

import "github.com/heartmarshall/nihongo-dataset/internal/domain"

// IsKanji reports whether r lies in the CJK Unified Ideographs block
// (U+4E00–U+9FAF) or Extension A (U+3400–U+4DBF). Both ranges also hold a
// few code points that are not kanji in the learner sense; they are kept.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FAF) || (r >= 0x3400 && r <= 0x4DBF)
}

// Extract counts every kanji position across words. Records come out in
// first-seen order so repeated runs over the same input are identical.
func Extract(words []string) []domain.KanjiRecord {
	index := make(map[rune]int)
	var records []domain.KanjiRecord

	for _, w := range words {
		for _, r := range w {
			if !IsKanji(r) {
				continue
			}
			if i, ok := index[r]; ok {
				records[i].Count++
				continue
			}
			index[r] = len(records)
			records = append(records, domain.KanjiRecord{Character: string(r), Count: 1})
		}
	}
	return records
}

// Characters returns the distinct characters of records in order.
func Characters(records []domain.KanjiRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Character
	}
	return out
}
