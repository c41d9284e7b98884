package provider

import "context"

// KanjiResult is the structured result from a kanji information provider.
// Pointer fields are nil when the source page or API does not carry them.
type KanjiResult struct {
	Kanji          string
	Strokes        *int
	Meanings       []string
	KunReadings    []string
	OnReadings     []string
	RadicalBasis   *string
	RadicalMeaning *string
}

// KanjiProvider looks up one kanji in an external character database.
// It returns nil, nil when the provider has no entry for the character.
type KanjiProvider interface {
	Name() string
	FetchKanji(ctx context.Context, kanji string) (*KanjiResult, error)
}
