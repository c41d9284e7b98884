package domain

// CharacterStrokeEntry is one row of the kana table: a single kana character
// with its romanization, stroke count and script.
type CharacterStrokeEntry struct {
	Character rune
	Romaji    string
	Strokes   int
	Script    Script
}

// KanaDigraph is a two-character kana sequence romanized as one syllable.
type KanaDigraph struct {
	Sequence string
	Romaji   string
	Script   Script
}
