package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and compresses inner runs of
// spaces into one. Case and script are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' || r == '　' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeReading prepares a kana reading for transliteration. It applies
// NFKC so that half-width katakana (ｶﾞ) become their full-width composed
// form (ガ), then trims whitespace. Invalid UTF-8 yields "" and false.
func NormalizeReading(reading string) (string, bool) {
	if !utf8.ValidString(reading) {
		return "", false
	}
	return strings.TrimSpace(norm.NFKC.String(reading)), true
}
