// Package kana holds the hiragana/katakana reference table (romanization and
// stroke counts) and the kana-to-romaji transliterator built from it.
package kana

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
)

// Row is one record of a kana table source: a single character or a
// two-character digraph. Strokes is ignored for digraphs.
type Row struct {
	Kana    string
	Romaji  string
	Script  domain.Script
	Strokes int
}

// Table is an immutable kana reference table. It is safe for concurrent use.
type Table struct {
	chars        map[rune]domain.CharacterStrokeEntry
	charOrder    []rune
	digraphs     map[string]domain.KanaDigraph
	digraphOrder []string
	translit     *Transliterator
}

// Default returns the built-in table. It is assembled once per process.
var Default = sync.OnceValue(func() *Table {
	t, err := NewTable(builtinRows())
	if err != nil {
		panic(fmt.Sprintf("kana: builtin table: %v", err))
	}
	return t
})

// NewTable validates rows and builds a Table. Keys must be unique; single
// characters need a non-negative stroke count, digraphs need romaji.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{
		chars:    make(map[rune]domain.CharacterStrokeEntry, len(rows)),
		digraphs: make(map[string]domain.KanaDigraph),
	}

	var errs []domain.FieldError
	for i, r := range rows {
		field := fmt.Sprintf("rows[%d]", i)
		if !r.Script.IsValid() {
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("unknown script %q", r.Script)})
			continue
		}

		switch utf8.RuneCountInString(r.Kana) {
		case 1:
			ch, _ := utf8.DecodeRuneInString(r.Kana)
			if _, dup := t.chars[ch]; dup {
				errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("duplicate kana %q", r.Kana)})
				continue
			}
			if r.Strokes < 0 {
				errs = append(errs, domain.FieldError{Field: field, Message: "stroke count must be >= 0"})
				continue
			}
			t.chars[ch] = domain.CharacterStrokeEntry{
				Character: ch,
				Romaji:    r.Romaji,
				Strokes:   r.Strokes,
				Script:    r.Script,
			}
			t.charOrder = append(t.charOrder, ch)
		case 2:
			if _, dup := t.digraphs[r.Kana]; dup {
				errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("duplicate digraph %q", r.Kana)})
				continue
			}
			if r.Romaji == "" {
				errs = append(errs, domain.FieldError{Field: field, Message: "digraph romaji is required"})
				continue
			}
			t.digraphs[r.Kana] = domain.KanaDigraph{Sequence: r.Kana, Romaji: r.Romaji, Script: r.Script}
			t.digraphOrder = append(t.digraphOrder, r.Kana)
		default:
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("kana %q must be 1 or 2 characters", r.Kana)})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	t.translit = newTransliteratorFromTable(t)
	return t, nil
}

// Entry returns the table row for a single character.
func (t *Table) Entry(ch rune) (domain.CharacterStrokeEntry, bool) {
	e, ok := t.chars[ch]
	return e, ok
}

// Strokes returns the stroke count of a single kana character.
func (t *Table) Strokes(ch rune) (int, bool) {
	e, ok := t.chars[ch]
	if !ok {
		return 0, false
	}
	return e.Strokes, true
}

// Len returns the number of single-character entries.
func (t *Table) Len() int { return len(t.chars) }

// Entries returns single-character entries in source order.
func (t *Table) Entries() []domain.CharacterStrokeEntry {
	out := make([]domain.CharacterStrokeEntry, len(t.charOrder))
	for i, ch := range t.charOrder {
		out[i] = t.chars[ch]
	}
	return out
}

// Digraphs returns digraph entries in source order.
func (t *Table) Digraphs() []domain.KanaDigraph {
	out := make([]domain.KanaDigraph, len(t.digraphOrder))
	for i, seq := range t.digraphOrder {
		out[i] = t.digraphs[seq]
	}
	return out
}

// Rows returns the table in the shape accepted by NewTable: characters
// first, then digraphs.
func (t *Table) Rows() []Row {
	rows := make([]Row, 0, len(t.charOrder)+len(t.digraphOrder))
	for _, e := range t.Entries() {
		rows = append(rows, Row{Kana: string(e.Character), Romaji: e.Romaji, Script: e.Script, Strokes: e.Strokes})
	}
	for _, d := range t.Digraphs() {
		rows = append(rows, Row{Kana: d.Sequence, Romaji: d.Romaji, Script: d.Script})
	}
	return rows
}

// Transliterator returns the transliterator derived from this table.
func (t *Table) Transliterator() *Transliterator { return t.translit }
