package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

// KanjiHeader is the column order of the cleaned kanji table.
var KanjiHeader = []string{
	"kanji", "count", "strokes", "translation",
	"kun_readings", "on_readings", "kun_romaji", "on_romaji",
	"radical_basis", "radical_meaning",
}

// WriteKanji writes normalized kanji records. Fields left nil by a failed
// enrichment become empty cells.
func WriteKanji(w io.Writer, records []domain.KanjiRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(KanjiHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		strokes := ""
		if r.Strokes != nil {
			strokes = strconv.Itoa(*r.Strokes)
		}
		row := []string{
			r.Character,
			strconv.Itoa(r.Count),
			strokes,
			deref(r.Translation),
			deref(r.KunDisplay),
			deref(r.OnDisplay),
			deref(r.KunRomaji),
			deref(r.OnRomaji),
			deref(r.RadicalBasis),
			deref(r.RadicalMeaning),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", r.Character, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteKanjiFile writes records to path atomically.
func WriteKanjiFile(path string, records []domain.KanjiRecord) error {
	return writeFile(path, func(w io.Writer) error { return WriteKanji(w, records) })
}
