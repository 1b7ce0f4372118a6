package lexicon

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileOverrides mirrors Lexicon for YAML, with every field optional so a file
// can override just the pieces it cares about. Durations are written as Go
// duration strings ("5m", "90s").
type fileOverrides struct {
	RiskKeywords             []string `yaml:"risk_keywords"`
	DismissivePatterns       []string `yaml:"dismissive_patterns"`
	LeadershipRoles          []string `yaml:"leadership_roles"`
	ImpactKeywords           []string `yaml:"impact_keywords"`
	PersistenceMarkers       []string `yaml:"persistence_markers"`
	SimilarityThreshold      *float64 `yaml:"similarity_threshold"`
	WindowWidth              *string  `yaml:"window_width"`
	PositiveCutoff           *float64 `yaml:"positive_cutoff"`
	NegativeCutoff           *float64 `yaml:"negative_cutoff"`
	DismissalSentimentCutoff *float64 `yaml:"dismissal_sentiment_cutoff"`
	ContinuedConcernCutoff   *float64 `yaml:"continued_concern_cutoff"`
	FlagRateMediumCutoff     *float64 `yaml:"flag_rate_medium_cutoff"`
	FlagRateHighCutoff       *float64 `yaml:"flag_rate_high_cutoff"`
}

// Encode renders a lexicon as a YAML document that Parse accepts. Every field
// is written out, so Encode followed by Parse reproduces the lexicon exactly.
func Encode(lex Lexicon) ([]byte, error) {
	width := lex.WindowWidth.String()
	over := fileOverrides{
		RiskKeywords:             lex.RiskKeywords,
		DismissivePatterns:       lex.DismissivePatterns,
		LeadershipRoles:          lex.LeadershipRoles,
		ImpactKeywords:           lex.ImpactKeywords,
		PersistenceMarkers:       lex.PersistenceMarkers,
		SimilarityThreshold:      &lex.SimilarityThreshold,
		WindowWidth:              &width,
		PositiveCutoff:           &lex.PositiveCutoff,
		NegativeCutoff:           &lex.NegativeCutoff,
		DismissalSentimentCutoff: &lex.DismissalSentimentCutoff,
		ContinuedConcernCutoff:   &lex.ContinuedConcernCutoff,
		FlagRateMediumCutoff:     &lex.FlagRateMediumCutoff,
		FlagRateHighCutoff:       &lex.FlagRateHighCutoff,
	}
	data, err := yaml.Marshal(over)
	if err != nil {
		return nil, fmt.Errorf("lexicon: encode yaml: %w", err)
	}
	return data, nil
}

// LoadFile reads a YAML overrides file and applies it on top of the default
// lexicon. The merged result is validated before being returned.
func LoadFile(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies YAML overrides on top of the default lexicon.
func Parse(data []byte) (Lexicon, error) {
	var over fileOverrides
	if err := yaml.Unmarshal(data, &over); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: parse yaml: %w", err)
	}

	lex := Default()
	if over.RiskKeywords != nil {
		lex.RiskKeywords = over.RiskKeywords
	}
	if over.DismissivePatterns != nil {
		lex.DismissivePatterns = over.DismissivePatterns
	}
	if over.LeadershipRoles != nil {
		lex.LeadershipRoles = over.LeadershipRoles
	}
	if over.ImpactKeywords != nil {
		lex.ImpactKeywords = over.ImpactKeywords
	}
	if over.PersistenceMarkers != nil {
		lex.PersistenceMarkers = over.PersistenceMarkers
	}
	if over.SimilarityThreshold != nil {
		lex.SimilarityThreshold = *over.SimilarityThreshold
	}
	if over.WindowWidth != nil {
		d, err := time.ParseDuration(*over.WindowWidth)
		if err != nil {
			return Lexicon{}, fmt.Errorf("lexicon: parse window_width %q: %w", *over.WindowWidth, err)
		}
		lex.WindowWidth = d
	}
	if over.PositiveCutoff != nil {
		lex.PositiveCutoff = *over.PositiveCutoff
	}
	if over.NegativeCutoff != nil {
		lex.NegativeCutoff = *over.NegativeCutoff
	}
	if over.DismissalSentimentCutoff != nil {
		lex.DismissalSentimentCutoff = *over.DismissalSentimentCutoff
	}
	if over.ContinuedConcernCutoff != nil {
		lex.ContinuedConcernCutoff = *over.ContinuedConcernCutoff
	}
	if over.FlagRateMediumCutoff != nil {
		lex.FlagRateMediumCutoff = *over.FlagRateMediumCutoff
	}
	if over.FlagRateHighCutoff != nil {
		lex.FlagRateHighCutoff = *over.FlagRateHighCutoff
	}

	if err := lex.Validate(); err != nil {
		return Lexicon{}, err
	}
	return lex, nil
}
