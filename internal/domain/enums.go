package domain

import "strings"

// Script identifies which kana syllabary a character belongs to.
type Script string

const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
)

func (s Script) String() string { return string(s) }

func (s Script) IsValid() bool {
	switch s {
	case ScriptHiragana, ScriptKatakana:
		return true
	}
	return false
}

// JLPTLevel is a JLPT proficiency tag, N1 (hardest) to N5 (easiest).
type JLPTLevel string

const (
	JLPTN1 JLPTLevel = "N1"
	JLPTN2 JLPTLevel = "N2"
	JLPTN3 JLPTLevel = "N3"
	JLPTN4 JLPTLevel = "N4"
	JLPTN5 JLPTLevel = "N5"
)

func (l JLPTLevel) String() string { return string(l) }

func (l JLPTLevel) IsValid() bool {
	switch l {
	case JLPTN1, JLPTN2, JLPTN3, JLPTN4, JLPTN5:
		return true
	}
	return false
}

// ParseJLPTLevel accepts "N5", "n5", "5" and "JLPT N5" style values.
// Unrecognized input returns "" and false.
func ParseJLPTLevel(raw string) (JLPTLevel, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "JLPT")
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		s = "N" + s
	}
	l := JLPTLevel(s)
	if !l.IsValid() {
		return "", false
	}
	return l, true
}
