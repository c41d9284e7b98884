package domain

import "testing"

func TestScript_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		script Script
		want   bool
	}{
		{ScriptHiragana, true},
		{ScriptKatakana, true},
		{Script("kanji"), false},
		{Script(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.script), func(t *testing.T) {
			t.Parallel()
			if got := tt.script.IsValid(); got != tt.want {
				t.Errorf("Script(%q).IsValid() = %v, want %v", tt.script, got, tt.want)
			}
		})
	}
}

func TestParseJLPTLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   JLPTLevel
		wantOK bool
	}{
		{"N5", JLPTN5, true},
		{"n1", JLPTN1, true},
		{" N3 ", JLPTN3, true},
		{"4", JLPTN4, true},
		{"JLPT N2", JLPTN2, true},
		{"N6", "", false},
		{"", "", false},
		{"beginner", "", false},
	}
	for _, tt := range tests {
		t.Run("raw_"+tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseJLPTLevel(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseJLPTLevel(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
