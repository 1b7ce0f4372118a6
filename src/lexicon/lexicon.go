// Package lexicon holds the configuration lexicons and thresholds that drive
// risk detection. A Lexicon is built once, validated, compiled into matchers,
// and treated as immutable for the whole run.
package lexicon

import (
	"fmt"
	"time"
)

// Lexicon is the full configuration surface of the analysis pipeline.
type Lexicon struct {
	// RiskKeywords are terms whose presence suggests a technical issue is being
	// discussed. Matched case-insensitively on word boundaries.
	RiskKeywords []string `yaml:"risk_keywords"`

	// DismissivePatterns are phrases suggesting a concern is being downplayed.
	// Matched case-insensitively on word boundaries.
	DismissivePatterns []string `yaml:"dismissive_patterns"`

	// LeadershipRoles are sender identities whose dismissive or positive framing
	// of a risk is weighted more heavily. Matched exactly against the sender.
	LeadershipRoles []string `yaml:"leadership_roles"`

	// ImpactKeywords indicate potential business impact when present in flagged
	// messages. Feeds the severity assessment.
	ImpactKeywords []string `yaml:"impact_keywords"`

	// PersistenceMarkers indicate a concern being re-raised ("still", "again").
	PersistenceMarkers []string `yaml:"persistence_markers"`

	// SimilarityThreshold is the cosine similarity at or above which two risk
	// messages are considered topically related.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// WindowWidth is the communication-gap window size.
	WindowWidth time.Duration `yaml:"window_width"`

	// PositiveCutoff / NegativeCutoff band the compound sentiment: strictly
	// above PositiveCutoff is positive, strictly below NegativeCutoff is
	// negative, everything else neutral.
	PositiveCutoff float64 `yaml:"positive_cutoff"`
	NegativeCutoff float64 `yaml:"negative_cutoff"`

	// DismissalSentimentCutoff is the compound sentiment above which a
	// leadership risk mention inside a cluster counts as a dismissal.
	DismissalSentimentCutoff float64 `yaml:"dismissal_sentiment_cutoff"`

	// ContinuedConcernCutoff is the compound sentiment below which a
	// non-leadership follow-up counts as continued doubt.
	ContinuedConcernCutoff float64 `yaml:"continued_concern_cutoff"`

	// FlagRateMediumCutoff / FlagRateHighCutoff band the flag rate into
	// severity levels: rate <= medium cutoff is Low, rate <= high cutoff is
	// Medium, above is High.
	FlagRateMediumCutoff float64 `yaml:"flag_rate_medium_cutoff"`
	FlagRateHighCutoff   float64 `yaml:"flag_rate_high_cutoff"`
}

// Default returns the stock lexicon. The word lists and numeric defaults carry
// over from the original deployment and are the calibration the reason rules
// were tuned against.
func Default() Lexicon {
	return Lexicon{
		RiskKeywords: []string{
			"spike", "anomaly", "weird", "thermal deviation", "not urgent but",
			"deviation", "unusual", "abnormal", "drift", "fluctuation", "issue",
			"bug", "glitch", "error", "warning", "concern", "problem", "malfunction",
			"failure", "fault", "defect", "inconsistent", "unexpected", "irregular",
		},
		DismissivePatterns: []string{
			"not a big deal", "probably nothing", "don't worry", "not critical",
			"no need to", "minor", "not urgent", "can ignore", "non-blocking",
			"not a showstopper", "not alarming", "within tolerance", "noise",
			"harmless", "nothing to worry about", "not a concern", "deemed non-blocking",
			"no criticals", "not prioritize", "all clear", "no red flags",
		},
		LeadershipRoles: []string{"PM_Lead", "Director", "QA_Tech", "Systems_Admin"},
		ImpactKeywords: []string{
			"critical", "serious", "significant", "major", "dangerous", "outage",
		},
		PersistenceMarkers: []string{
			"still", "again", "continues", "persist", "repeat", "not convinced",
		},
		SimilarityThreshold:      0.3,
		WindowWidth:              5 * time.Minute,
		PositiveCutoff:           0.05,
		NegativeCutoff:           -0.05,
		DismissalSentimentCutoff: 0.2,
		ContinuedConcernCutoff:   -0.2,
		FlagRateMediumCutoff:     0.05,
		FlagRateHighCutoff:       0.15,
	}
}

// Validate rejects lexicons that cannot drive a meaningful run.
func (l Lexicon) Validate() error {
	if len(l.RiskKeywords) == 0 {
		return fmt.Errorf("lexicon: risk_keywords must not be empty")
	}
	if len(l.DismissivePatterns) == 0 {
		return fmt.Errorf("lexicon: dismissive_patterns must not be empty")
	}
	if l.SimilarityThreshold <= 0 || l.SimilarityThreshold > 1 {
		return fmt.Errorf("lexicon: similarity_threshold %v out of (0, 1]", l.SimilarityThreshold)
	}
	if l.WindowWidth <= 0 {
		return fmt.Errorf("lexicon: window_width must be positive, got %v", l.WindowWidth)
	}
	if l.NegativeCutoff >= l.PositiveCutoff {
		return fmt.Errorf("lexicon: negative_cutoff %v must be below positive_cutoff %v",
			l.NegativeCutoff, l.PositiveCutoff)
	}
	if l.FlagRateMediumCutoff <= 0 || l.FlagRateHighCutoff <= l.FlagRateMediumCutoff {
		return fmt.Errorf("lexicon: flag rate cutoffs must satisfy 0 < medium < high")
	}
	return nil
}
