package domain

// KanjiRecord aggregates one kanji across the vocabulary corpus.
//
// Count is filled by extraction. The enrichment fields stay nil when the
// external lookup failed for this character; Enriched reports which case
// applies. The display fields are derived by the normalizer afterwards.
type KanjiRecord struct {
	Character string
	Count     int

	Enriched       bool
	Strokes        *int
	Meanings       []string
	KunReadings    []string
	OnReadings     []string
	RadicalBasis   *string
	RadicalMeaning *string

	Translation *string
	KunDisplay  *string
	OnDisplay   *string
	KunRomaji   *string
	OnRomaji    *string
}
