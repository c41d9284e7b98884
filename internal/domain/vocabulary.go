package domain

// VocabularyEntry is one JLPT vocabulary row. Romaji, NumCharacters and
// StrokeCount are derived from the other fields by the pipeline.
type VocabularyEntry struct {
	Word        string
	Furigana    string
	Translation string
	JLPTLevel   JLPTLevel

	Romaji        *string
	NumCharacters int
	StrokeCount   int
}
