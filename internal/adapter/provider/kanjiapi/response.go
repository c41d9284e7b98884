package kanjiapi

// apiKanji is the kanjiapi.dev /v1/kanji/{character} payload.
type apiKanji struct {
	Kanji       string   `json:"kanji"`
	StrokeCount int      `json:"stroke_count"`
	Meanings    []string `json:"meanings"`
	KunReadings []string `json:"kun_readings"`
	OnReadings  []string `json:"on_readings"`
	Grade       *int     `json:"grade"`
	JLPT        *int     `json:"jlpt"`
	Unicode     string   `json:"unicode"`
	HeisigEN    string   `json:"heisig_en"`
}
