package kana

import (
	"strings"
	"unicode/utf8"
)

// Transliterator converts kana text to romaji with a single left-to-right
// scan. Characters it does not know are copied through unchanged.
type Transliterator struct {
	digraphs   map[string]string
	monographs map[rune]string
}

// NewTransliterator builds a Transliterator from explicit lookup maps.
// Monographs with empty romaji are ignored.
func NewTransliterator(digraphs map[string]string, monographs map[rune]string) *Transliterator {
	t := &Transliterator{
		digraphs:   make(map[string]string, len(digraphs)),
		monographs: make(map[rune]string, len(monographs)),
	}
	for k, v := range digraphs {
		if utf8.RuneCountInString(k) == 2 && v != "" {
			t.digraphs[k] = v
		}
	}
	for k, v := range monographs {
		if v != "" {
			t.monographs[k] = v
		}
	}
	return t
}

func newTransliteratorFromTable(t *Table) *Transliterator {
	digraphs := make(map[string]string, len(t.digraphs))
	for seq, d := range t.digraphs {
		digraphs[seq] = d.Romaji
	}
	monographs := make(map[rune]string, len(t.chars))
	for ch, e := range t.chars {
		monographs[ch] = e.Romaji
	}
	return NewTransliterator(digraphs, monographs)
}

// IsGeminationMarker reports whether ch is the small tsu of either script.
func IsGeminationMarker(ch rune) bool {
	return ch == 'っ' || ch == 'ッ'
}

// Romanize transliterates text. A gemination marker doubles the first
// letter of the following syllable and is re-scanned from the next
// character; a marker with nothing romanizable after it is dropped.
func (t *Transliterator) Romanize(text string) string {
	rs := []rune(text)
	n := len(rs)

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < n; {
		if IsGeminationMarker(rs[i]) {
			if i+3 <= n {
				if r, ok := t.digraphs[string(rs[i+1:i+3])]; ok {
					b.WriteRune(firstRune(r))
					i++
					continue
				}
			}
			if i+1 < n {
				if r, ok := t.monographs[rs[i+1]]; ok {
					b.WriteRune(firstRune(r))
					i++
					continue
				}
			}
			i++
			continue
		}

		if i+2 <= n {
			if r, ok := t.digraphs[string(rs[i:i+2])]; ok {
				b.WriteString(r)
				i += 2
				continue
			}
		}

		if r, ok := t.monographs[rs[i]]; ok {
			b.WriteString(r)
			i++
			continue
		}

		b.WriteRune(rs[i])
		i++
	}

	return b.String()
}

// RomanizePtr is Romanize for optional values: nil or invalid UTF-8 input
// yields nil.
func (t *Transliterator) RomanizePtr(text *string) *string {
	if text == nil || !utf8.ValidString(*text) {
		return nil
	}
	out := t.Romanize(*text)
	return &out
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
