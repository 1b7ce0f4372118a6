package stats

import (
	"math"
	"testing"
	"time"

	"riskwatch/src/contracts"
	"riskwatch/src/dismissal"
	"riskwatch/src/lexicon"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(lexicon.MustCompile(lexicon.Default()))
}

func sm(minute int, sender, channel, text string, sentiment float64, risk, dismissive, leader bool) contracts.ScoredMessage {
	return contracts.ScoredMessage{
		Message: contracts.Message{
			Timestamp: time.Date(2024, 3, 1, 9, minute, 0, 0, time.UTC),
			Sender:    sender,
			Channel:   channel,
			Text:      text,
		},
		CompoundSentiment: sentiment,
		ContainsRiskWord:  risk,
		IsDismissive:      dismissive,
		IsLeadership:      leader,
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	a := newAnalyzer(t)

	st := a.Aggregate(nil, nil, dismissal.Summary{})
	if st.TotalMessages != 0 {
		t.Errorf("total = %d, want 0", st.TotalMessages)
	}
	if st.FlagRate != 0 || math.IsNaN(st.FlagRate) {
		t.Errorf("flag rate = %v, want exactly 0", st.FlagRate)
	}
	if st.SeverityLevel != contracts.SeverityLow {
		t.Errorf("severity = %v, want Low", st.SeverityLevel)
	}
}

func TestAggregateCounts(t *testing.T) {
	a := newAnalyzer(t)

	msgs := []contracts.ScoredMessage{
		sm(0, "eng1", "#ops", "anomaly", -0.4, true, false, false),
		sm(2, "eng1", "#ops", "hello", 0.2, false, false, false),
		sm(5, "PM_Lead", "#general", "minor, all clear", 0.6, false, true, true),
	}

	st := a.Aggregate(msgs, nil, dismissal.Summary{})

	if st.TotalMessages != 3 {
		t.Errorf("total = %d, want 3", st.TotalMessages)
	}
	if st.PerSenderCounts["eng1"] != 2 || st.PerSenderCounts["PM_Lead"] != 1 {
		t.Errorf("per-sender = %v", st.PerSenderCounts)
	}
	if st.PerChannelCount["#ops"] != 2 || st.PerChannelCount["#general"] != 1 {
		t.Errorf("per-channel = %v", st.PerChannelCount)
	}
	if st.RiskKeywordCount != 1 || st.DismissiveCount != 1 || st.LeadershipCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			st.RiskKeywordCount, st.DismissiveCount, st.LeadershipCount)
	}

	wantMean := (-0.4 + 0.2 + 0.6) / 3
	if math.Abs(st.MeanSentiment-wantMean) > 1e-9 {
		t.Errorf("mean sentiment = %v, want %v", st.MeanSentiment, wantMean)
	}
	if st.Duration != 5*time.Minute {
		t.Errorf("duration = %v, want 5m", st.Duration)
	}
}

func TestSeverityBands(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name string
		st   contracts.ConversationStats
		want contracts.Severity
	}{
		{"below medium cutoff", contracts.ConversationStats{FlagRate: 0.04}, contracts.SeverityLow},
		{"at medium cutoff", contracts.ConversationStats{FlagRate: 0.05}, contracts.SeverityMedium},
		{"mid band", contracts.ConversationStats{FlagRate: 0.10}, contracts.SeverityMedium},
		{"at high cutoff", contracts.ConversationStats{FlagRate: 0.15}, contracts.SeverityMedium},
		{"above high cutoff", contracts.ConversationStats{FlagRate: 0.16}, contracts.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := severity(tt.st, lex); got != tt.want {
				t.Errorf("severity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityEscalation(t *testing.T) {
	lex := lexicon.Default()

	// One aggravating factor does not escalate.
	st := contracts.ConversationStats{FlagRate: 0.04, DismissalFactor: 0.8}
	if got := severity(st, lex); got != contracts.SeverityLow {
		t.Errorf("one factor: severity = %v, want Low", got)
	}

	// Two factors escalate one level.
	st.PersistenceFactor = 0.6
	if got := severity(st, lex); got != contracts.SeverityMedium {
		t.Errorf("two factors: severity = %v, want Medium", got)
	}

	// Escalation caps at High.
	st.FlagRate = 0.3
	st.ImpactKeywords = true
	if got := severity(st, lex); got != contracts.SeverityHigh {
		t.Errorf("capped: severity = %v, want High", got)
	}
}

func TestDismissalAndPersistenceFactors(t *testing.T) {
	a := newAnalyzer(t)

	msgs := []contracts.ScoredMessage{
		sm(0, "eng1", "#ops", "anomaly", -0.4, true, false, false),
		sm(1, "eng2", "#ops", "drift", -0.2, true, false, false),
	}
	sum := dismissal.Summary{
		RiskMessages:       2,
		DismissedConcerns:  1,
		PersistentClusters: 1,
		TotalClusters:      2,
	}

	st := a.Aggregate(msgs, nil, sum)
	if st.DismissalFactor != 0.5 {
		t.Errorf("dismissal factor = %v, want 0.5", st.DismissalFactor)
	}
	if st.PersistenceFactor != 0.5 {
		t.Errorf("persistence factor = %v, want 0.5", st.PersistenceFactor)
	}
}

func TestImpactKeywordDetection(t *testing.T) {
	a := newAnalyzer(t)

	msgs := []contracts.ScoredMessage{
		sm(0, "eng1", "#ops", "this error looks critical to me", -0.5, true, false, false),
	}
	flags := []contracts.FlaggedMessage{
		{Index: 0, ScoredMessage: msgs[0], Reasons: []contracts.Reason{contracts.ReasonConcernRaised}, Cluster: 0},
	}

	st := a.Aggregate(msgs, flags, dismissal.Summary{})
	if !st.ImpactKeywords {
		t.Error("impact keyword in a flagged message should set ImpactKeywords")
	}
}
