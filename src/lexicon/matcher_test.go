package lexicon

import (
	"testing"
	"time"
)

func TestContainsRisk(t *testing.T) {
	m := MustCompile(Default())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain keyword", "We see a thermal deviation, possible anomaly.", true},
		{"case insensitive", "SPIKE detected in sensor 4", true},
		{"keyword inside word does not match", "He reissued the badge", false},
		{"plural is a different word", "No issues here at all", false},
		{"multi-word phrase", "not urgent but the readings drifted", true},
		{"empty text", "", false},
		{"unicode noise degrades to no match", "日本語のテキスト 🚀🚀🚀", false},
		{"no keyword", "Lunch at noon?", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ContainsRisk(tt.text); got != tt.want {
				t.Errorf("ContainsRisk(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsDismissive(t *testing.T) {
	m := MustCompile(Default())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"phrase with punctuation after", "Not a big deal, within tolerance.", true},
		{"apostrophe phrase", "Don't worry about the logs", true},
		{"no criticals", "Minor spike, no criticals, all clear", true},
		{"minor inside word does not match", "This is a minority opinion", false},
		{"nothing dismissive", "We should investigate this today", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ContainsDismissive(tt.text); got != tt.want {
				t.Errorf("ContainsDismissive(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsLeadership(t *testing.T) {
	m := MustCompile(Default())

	if !m.IsLeadership("PM_Lead") {
		t.Error("PM_Lead should be leadership")
	}
	if m.IsLeadership("pm_lead") {
		t.Error("leadership match is exact, not case-folded")
	}
	if m.IsLeadership("Engineer_1") {
		t.Error("Engineer_1 should not be leadership")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Lexicon)
		wantErr bool
	}{
		{"defaults are valid", func(l *Lexicon) {}, false},
		{"no risk keywords", func(l *Lexicon) { l.RiskKeywords = nil }, true},
		{"no dismissive patterns", func(l *Lexicon) { l.DismissivePatterns = nil }, true},
		{"threshold above one", func(l *Lexicon) { l.SimilarityThreshold = 1.5 }, true},
		{"zero window", func(l *Lexicon) { l.WindowWidth = 0 }, true},
		{"inverted cutoffs", func(l *Lexicon) { l.NegativeCutoff, l.PositiveCutoff = 0.05, -0.05 }, true},
		{"inverted flag rate cutoffs", func(l *Lexicon) { l.FlagRateHighCutoff = 0.01 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := Default()
			tt.mutate(&lex)
			err := lex.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOverrides(t *testing.T) {
	data := []byte(`
risk_keywords: ["meltdown"]
similarity_threshold: 0.45
window_width: "10m"
`)

	lex, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(lex.RiskKeywords) != 1 || lex.RiskKeywords[0] != "meltdown" {
		t.Errorf("risk keywords not overridden: %v", lex.RiskKeywords)
	}
	if lex.SimilarityThreshold != 0.45 {
		t.Errorf("similarity threshold = %v, want 0.45", lex.SimilarityThreshold)
	}
	if lex.WindowWidth != 10*time.Minute {
		t.Errorf("window width = %v, want 10m", lex.WindowWidth)
	}
	// Untouched fields keep defaults.
	if len(lex.DismissivePatterns) == 0 {
		t.Error("dismissive patterns should keep defaults")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse([]byte(`window_width: "not-a-duration"`)); err == nil {
		t.Error("bad duration should fail")
	}
	if _, err := Parse([]byte(`similarity_threshold: 2.0`)); err == nil {
		t.Error("out-of-range threshold should fail")
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Error("malformed yaml should fail")
	}
}
