// Package score derives per-message signals: compound sentiment, keyword and
// dismissive-phrase hits, leadership attribution, and the downplay flag.
// Scoring is stateless per message, so the whole table fans out across
// workers and rejoins in original order.
package score

import (
	"runtime"
	"strings"
	"sync"

	"github.com/jonreiter/govader"

	"riskwatch/src/contracts"
	"riskwatch/src/lexicon"
)

// Band is the classification of a compound sentiment score.
type Band string

const (
	BandPositive Band = "positive"
	BandNeutral  Band = "neutral"
	BandNegative Band = "negative"
)

// Scorer scores messages against a compiled lexicon.
type Scorer struct {
	matcher *lexicon.Matcher
}

// NewScorer creates a Scorer for the given compiled lexicon.
func NewScorer(m *lexicon.Matcher) *Scorer {
	return &Scorer{matcher: m}
}

// ScoreMessage derives all per-message fields for one message.
func (s *Scorer) ScoreMessage(msg contracts.Message) contracts.ScoredMessage {
	return s.scoreWith(govader.NewSentimentIntensityAnalyzer(), msg)
}

func (s *Scorer) scoreWith(sia *govader.SentimentIntensityAnalyzer, msg contracts.Message) contracts.ScoredMessage {
	scored := contracts.ScoredMessage{
		Message:           msg,
		CompoundSentiment: compound(sia, msg.Text),
		ContainsRiskWord:  s.matcher.ContainsRisk(msg.Text),
		IsDismissive:      s.matcher.ContainsDismissive(msg.Text),
		IsLeadership:      s.matcher.IsLeadership(msg.Sender),
	}
	scored.IsDownplaying = downplaying(scored)
	return scored
}

// ScoreAll scores every message, preserving input order. Messages are split
// into contiguous spans, one worker per span; workers share nothing but
// disjoint regions of the output slice.
func (s *Scorer) ScoreAll(msgs []contracts.Message) []contracts.ScoredMessage {
	out := make([]contracts.ScoredMessage, len(msgs))
	if len(msgs) == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(msgs) {
		workers = len(msgs)
	}

	span := (len(msgs) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * span
		hi := lo + span
		if hi > len(msgs) {
			hi = len(msgs)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			// One analyzer per worker; the analyzer itself is cheap to build
			// and this keeps each goroutine self-contained.
			sia := govader.NewSentimentIntensityAnalyzer()
			for i := lo; i < hi; i++ {
				out[i] = s.scoreWith(sia, msgs[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}

// downplaying implements the per-message downplay rule:
// (risk AND dismissive) OR (risk AND sentiment strictly positive AND leadership).
// Exactly zero sentiment never satisfies the leadership branch.
func downplaying(m contracts.ScoredMessage) bool {
	if !m.ContainsRiskWord {
		return false
	}
	if m.IsDismissive {
		return true
	}
	return m.CompoundSentiment > 0 && m.IsLeadership
}

// compound returns the compound polarity of text in [-1, 1]. Empty or
// whitespace-only text is neutral by definition.
func compound(sia *govader.SentimentIntensityAnalyzer, text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	c := sia.PolarityScores(text).Compound
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	return c
}

// Classify bands a compound score using the lexicon cutoffs: strictly above
// the positive cutoff is positive, strictly below the negative cutoff is
// negative, boundary values are neutral.
func Classify(compound float64, lex lexicon.Lexicon) Band {
	switch {
	case compound > lex.PositiveCutoff:
		return BandPositive
	case compound < lex.NegativeCutoff:
		return BandNegative
	default:
		return BandNeutral
	}
}
