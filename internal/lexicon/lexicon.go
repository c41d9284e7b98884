// Package lexicon resolves per-character stroke counts from the kana table
// and the enriched kanji records, and sums them per word.
package lexicon

import (
	"unicode/utf8"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/kana"
)

// Source tells where a character's stroke count came from.
type Source int

const (
	SourceUnknown Source = iota
	SourceKana
	SourceKanji
)

func (s Source) String() string {
	switch s {
	case SourceKana:
		return "kana"
	case SourceKanji:
		return "kanji"
	default:
		return "unknown"
	}
}

// CharacterInfo is the resolved stroke data for one character.
type CharacterInfo struct {
	Char    rune
	Strokes int
	Source  Source
}

// StrokeIndex is an immutable lookup over kana and kanji stroke counts.
// Kana entries take precedence when a character appears in both.
type StrokeIndex struct {
	kana  *kana.Table
	kanji map[rune]int
}

// NewStrokeIndex builds an index from a kana table and kanji records.
// Records without a stroke count (failed enrichment) are left out.
func NewStrokeIndex(table *kana.Table, records []domain.KanjiRecord) *StrokeIndex {
	idx := &StrokeIndex{
		kana:  table,
		kanji: make(map[rune]int, len(records)),
	}
	for _, r := range records {
		if r.Strokes == nil || utf8.RuneCountInString(r.Character) != 1 {
			continue
		}
		ch, _ := utf8.DecodeRuneInString(r.Character)
		idx.kanji[ch] = *r.Strokes
	}
	return idx
}

// Lookup resolves one character. Unknown characters report zero strokes.
func (x *StrokeIndex) Lookup(ch rune) CharacterInfo {
	if x.kana != nil {
		if n, ok := x.kana.Strokes(ch); ok {
			return CharacterInfo{Char: ch, Strokes: n, Source: SourceKana}
		}
	}
	if n, ok := x.kanji[ch]; ok {
		return CharacterInfo{Char: ch, Strokes: n, Source: SourceKanji}
	}
	return CharacterInfo{Char: ch, Source: SourceUnknown}
}

// WordStrokes sums the strokes of every character position in word.
// Unknown characters contribute zero.
func (x *StrokeIndex) WordStrokes(word string) int {
	total, _ := x.WordStrokesDetail(word)
	return total
}

// WordStrokesDetail is WordStrokes that also reports how many character
// positions could not be resolved.
func (x *StrokeIndex) WordStrokesDetail(word string) (total, unknown int) {
	for _, ch := range word {
		info := x.Lookup(ch)
		if info.Source == SourceUnknown {
			unknown++
			continue
		}
		total += info.Strokes
	}
	return total, unknown
}
