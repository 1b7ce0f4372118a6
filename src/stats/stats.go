// Package stats aggregates a scored conversation into counts, averages, and
// the overall risk severity. Pure computation, recomputed fully per run.
package stats

import (
	"riskwatch/src/contracts"
	"riskwatch/src/dismissal"
	"riskwatch/src/lexicon"
)

// Analyzer aggregates scored sequences.
type Analyzer struct {
	matcher *lexicon.Matcher
}

// New creates an Analyzer over the given compiled lexicon.
func New(m *lexicon.Matcher) *Analyzer {
	return &Analyzer{matcher: m}
}

// Aggregate computes the full stats object for one run. Empty input is valid:
// all counts zero, flag rate zero, severity Low.
func (a *Analyzer) Aggregate(msgs []contracts.ScoredMessage, flags []contracts.FlaggedMessage, sum dismissal.Summary) contracts.ConversationStats {
	lex := a.matcher.Lexicon()

	st := contracts.ConversationStats{
		TotalMessages:   len(msgs),
		PerSenderCounts: make(map[string]int),
		PerChannelCount: make(map[string]int),
		SeverityLevel:   contracts.SeverityLow,
	}
	if len(msgs) == 0 {
		return st
	}

	var sentimentTotal float64
	st.SentimentTrend = make([]float64, len(msgs))
	st.FirstTimestamp = msgs[0].Timestamp
	st.LastTimestamp = msgs[len(msgs)-1].Timestamp
	st.Duration = st.LastTimestamp.Sub(st.FirstTimestamp)

	for i, m := range msgs {
		st.PerSenderCounts[m.Sender]++
		st.PerChannelCount[m.Channel]++
		sentimentTotal += m.CompoundSentiment
		st.SentimentTrend[i] = m.CompoundSentiment

		if m.ContainsRiskWord {
			st.RiskKeywordCount++
		}
		if m.IsDismissive {
			st.DismissiveCount++
		}
		if m.IsLeadership {
			st.LeadershipCount++
		}
	}
	st.MeanSentiment = sentimentTotal / float64(len(msgs))

	st.FlaggedCount = len(flags)
	st.FlagRate = float64(len(flags)) / float64(len(msgs))

	st.DismissalFactor = ratio(sum.DismissedConcerns, sum.RiskMessages)
	st.PersistenceFactor = ratio(sum.PersistentClusters, sum.TotalClusters)
	for _, f := range flags {
		if a.matcher.ContainsImpact(f.Text) {
			st.ImpactKeywords = true
			break
		}
	}

	st.SeverityLevel = severity(st, lex)
	return st
}

// severity bands the flag rate (strictly below the medium cutoff is Low,
// strictly above the high cutoff is High, boundary values Medium) and then
// escalates one level when at least two aggravating factors hold: dismissal
// factor >= 0.5, persistence factor >= 0.5, impact keywords present.
func severity(st contracts.ConversationStats, lex lexicon.Lexicon) contracts.Severity {
	level := contracts.SeverityLow
	switch {
	case st.FlagRate > lex.FlagRateHighCutoff:
		level = contracts.SeverityHigh
	case st.FlagRate >= lex.FlagRateMediumCutoff:
		level = contracts.SeverityMedium
	}

	aggravating := 0
	if st.DismissalFactor >= 0.5 {
		aggravating++
	}
	if st.PersistenceFactor >= 0.5 {
		aggravating++
	}
	if st.ImpactKeywords {
		aggravating++
	}
	if aggravating >= 2 {
		level = escalate(level)
	}
	return level
}

func escalate(s contracts.Severity) contracts.Severity {
	switch s {
	case contracts.SeverityLow:
		return contracts.SeverityMedium
	case contracts.SeverityMedium:
		return contracts.SeverityHigh
	default:
		return contracts.SeverityHigh
	}
}

// ratio is n/d with a capped result and a zero denominator treated as zero.
func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	r := float64(n) / float64(d)
	if r > 1 {
		r = 1
	}
	return r
}
