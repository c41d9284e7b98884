// Package dataset reads the raw pipeline inputs and writes the cleaned CSV
// outputs. File paths in, domain structs out; no network or database.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

// Output file names.
const (
	VocabularyFile = "jlpt_vocab_clean.csv"
	KanjiFile      = "kanji_clean.csv"
	KanaFile       = "kana_romaji.csv"
)

// vocabularyColumns maps accepted header names (lower-cased) to a field.
var vocabularyColumns = map[string]string{
	"original":    "word",
	"word":        "word",
	"furigana":    "furigana",
	"english":     "translation",
	"translation": "translation",
	"jlpt level":  "jlpt_level",
	"jlpt_level":  "jlpt_level",
}

// VocabularyHeader is the column order of the cleaned vocabulary table.
var VocabularyHeader = []string{"word", "jlpt_level", "translation", "stroke_count", "romaji", "furigana", "num_characters"}

// VocabularyStats counts rows that were read with degraded fields.
type VocabularyStats struct {
	Rows           int
	SkippedBlank   int
	UnknownLevel   int
	InvalidReading int
}

// ReadVocabularyFile opens path and parses it with ReadVocabulary. A missing
// file is reported as domain.ErrMissingInput.
func ReadVocabularyFile(path string) ([]domain.VocabularyEntry, VocabularyStats, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, VocabularyStats{}, err
	}
	defer f.Close()

	entries, stats, err := ReadVocabulary(f)
	if err != nil {
		return nil, stats, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return entries, stats, nil
}

// ReadVocabulary parses a raw vocabulary CSV. The header must name the
// word column; furigana, translation and level columns are optional.
// Rows with a blank word are skipped. A blank furigana falls back to the
// word. Readings are NFKC-normalized; a reading that is not valid UTF-8 is
// kept as is so that its romaji comes out empty.
func ReadVocabulary(r io.Reader) ([]domain.VocabularyEntry, VocabularyStats, error) {
	var stats VocabularyStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, stats, fmt.Errorf("read header: %w", domain.ErrMissingInput)
		}
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if field, ok := vocabularyColumns[key]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["word"]; !ok {
		return nil, stats, fmt.Errorf("header has no word column: %w", domain.ErrMalformed)
	}

	get := func(record []string, field string) string {
		i, ok := cols[field]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var entries []domain.VocabularyEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read row: %w", err)
		}
		stats.Rows++

		word := get(record, "word")
		if strings.TrimSpace(word) == "" {
			stats.SkippedBlank++
			continue
		}

		furigana := get(record, "furigana")
		if reading, ok := domain.NormalizeReading(furigana); !ok {
			stats.InvalidReading++
		} else {
			furigana = reading
		}
		if furigana == "" {
			furigana = word
		}

		var level domain.JLPTLevel
		if raw := get(record, "jlpt_level"); raw != "" {
			var ok bool
			if level, ok = domain.ParseJLPTLevel(raw); !ok {
				stats.UnknownLevel++
			}
		}

		entries = append(entries, domain.VocabularyEntry{
			Word:        word,
			Furigana:    furigana,
			Translation: domain.NormalizeText(get(record, "translation")),
			JLPTLevel:   level,
		})
	}

	return entries, stats, nil
}

// WriteVocabulary writes entries in VocabularyHeader order. A nil romaji
// becomes an empty cell.
func WriteVocabulary(w io.Writer, entries []domain.VocabularyEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(VocabularyHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			e.Word,
			e.JLPTLevel.String(),
			e.Translation,
			strconv.Itoa(e.StrokeCount),
			deref(e.Romaji),
			e.Furigana,
			strconv.Itoa(e.NumCharacters),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", e.Word, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteVocabularyFile writes entries to path atomically.
func WriteVocabularyFile(path string, entries []domain.VocabularyEntry) error {
	return writeFile(path, func(w io.Writer) error { return WriteVocabulary(w, entries) })
}

func openInput(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset: input path: %w", domain.ErrMissingInput)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dataset: open %s: %w", path, domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
