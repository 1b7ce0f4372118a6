// Package dismissal scans each topic cluster's chronological sequence for
// raise→dismiss patterns and produces the authoritative flagged-message list.
//
// Conventions (fixed, tested):
//   - Each cluster is examined over its time span in the full sequence: from
//     the first member through the last member plus one window width of grace.
//     Non-member messages inside the span can dismiss, acknowledge, or answer
//     a concern, but only members count as raised concerns.
//   - DISMISSED_IN_CLUSTER tags the dismissive message, not the raised
//     concern. The concern itself still surfaces via CONCERN_RAISED when it
//     matches that rule, so both sides of the exchange stay visible.
//   - A pending concern is acknowledged (and stops feeding dismissal tags)
//     when its raiser later posts a risk-free, non-negative message in the
//     cluster's span.
//   - PERSISTENT_UNACKNOWLEDGED tags every non-leadership risk message of a
//     cluster in which the concern recurred at least twice with no
//     non-dismissive leadership response.
package dismissal

import (
	"sort"

	"riskwatch/src/contracts"
	"riskwatch/src/lexicon"
)

// Summary carries cluster-level counts consumed by the stats aggregation.
type Summary struct {
	// RiskMessages is the number of risk-keyword messages across all clusters.
	RiskMessages int
	// DismissedConcerns is the number of concerns that were pending when a
	// dismissal landed in their cluster's span.
	DismissedConcerns int
	// PersistentClusters is the number of clusters tagged persistent-unacknowledged.
	PersistentClusters int
	// TotalClusters is the number of clusters analyzed.
	TotalClusters int
}

// Analyzer combines the per-message downplay flags with cluster-derived flags.
type Analyzer struct {
	matcher *lexicon.Matcher
}

// New creates an Analyzer over the given compiled lexicon.
func New(m *lexicon.Matcher) *Analyzer {
	return &Analyzer{matcher: m}
}

// Analyze produces the final flagged-message list for one run: the union of
// the per-message downplay flags and the cluster-derived flags, deduplicated
// by message index with reasons unioned, sorted by timestamp ascending.
// msgs must already be timestamp-sorted; cluster members index into msgs.
func (a *Analyzer) Analyze(msgs []contracts.ScoredMessage, clusters []contracts.RiskCluster) ([]contracts.FlaggedMessage, Summary) {
	reasons := make(map[int]map[contracts.Reason]struct{})
	clusterOf := make(map[int]int)

	addReason := func(cluster, idx int, r contracts.Reason) {
		if reasons[idx] == nil {
			reasons[idx] = make(map[contracts.Reason]struct{})
		}
		reasons[idx][r] = struct{}{}
		if cluster >= 0 {
			if _, claimed := clusterOf[idx]; !claimed {
				clusterOf[idx] = cluster
			}
		}
	}

	// Per-message downplay flags.
	for i, m := range msgs {
		if m.ContainsRiskWord && m.IsDismissive {
			addReason(-1, i, contracts.ReasonRiskAndDismissive)
		}
		if m.ContainsRiskWord && m.IsLeadership && m.CompoundSentiment > 0 {
			addReason(-1, i, contracts.ReasonRiskPositiveLeadership)
		}
	}

	// Cluster-derived flags.
	var sum Summary
	sum.TotalClusters = len(clusters)
	for ci, cl := range clusters {
		for _, idx := range cl.Members {
			clusterOf[idx] = ci
		}
		cs := a.analyzeCluster(msgs, ci, cl, addReason)
		sum.RiskMessages += cs.RiskMessages
		sum.DismissedConcerns += cs.DismissedConcerns
		sum.PersistentClusters += cs.PersistentClusters
	}

	// Assemble. Deduplicated by construction; sorted by timestamp with the
	// sequence index breaking ties, so output is byte-stable across runs.
	indices := make([]int, 0, len(reasons))
	for idx := range reasons {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	flags := make([]contracts.FlaggedMessage, 0, len(indices))
	for _, idx := range indices {
		rs := make([]contracts.Reason, 0, len(reasons[idx]))
		for r := range reasons[idx] {
			rs = append(rs, r)
		}
		sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })

		cl := -1
		if c, ok := clusterOf[idx]; ok {
			cl = c
		}
		flags = append(flags, contracts.FlaggedMessage{
			Index:         idx,
			ScoredMessage: msgs[idx],
			Reasons:       rs,
			Cluster:       cl,
		})
	}
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].Timestamp.Before(flags[j].Timestamp)
	})
	return flags, sum
}

// pending is one raised concern waiting for a real response.
type pending struct {
	idx    int
	sender string
}

// analyzeCluster folds over one cluster's span in the full sequence. No state
// survives beyond the fold accumulator.
func (a *Analyzer) analyzeCluster(msgs []contracts.ScoredMessage, ci int, cl contracts.RiskCluster, addReason func(int, int, contracts.Reason)) Summary {
	var sum Summary
	if len(cl.Members) == 0 {
		return sum
	}
	lex := a.matcher.Lexicon()

	member := make(map[int]struct{}, len(cl.Members))
	for _, idx := range cl.Members {
		member[idx] = struct{}{}
	}

	spanStart := msgs[cl.Members[0]].Timestamp
	spanEnd := msgs[cl.Members[len(cl.Members)-1]].Timestamp.Add(lex.WindowWidth)

	var (
		pendingRaises  []pending
		concernRaised  bool
		riskMentions   int
		leadershipOK   bool // a non-dismissive leadership response was seen
		nonLeaderRisks []int
	)

	for idx, m := range msgs {
		if m.Timestamp.Before(spanStart) {
			continue
		}
		if m.Timestamp.After(spanEnd) {
			break
		}
		_, isMember := member[idx]

		if isMember {
			riskMentions++
			sum.RiskMessages++
		}

		switch {
		case isMember && !m.IsLeadership && !m.IsDismissive:
			nonLeaderRisks = append(nonLeaderRisks, idx)
			pendingRaises = append(pendingRaises, pending{idx: idx, sender: m.Sender})
			if m.CompoundSentiment < 0 {
				concernRaised = true
				addReason(ci, idx, contracts.ReasonConcernRaised)
			}

		case isDismissal(m, lex):
			if len(pendingRaises) > 0 {
				addReason(ci, idx, contracts.ReasonDismissedInCluster)
				sum.DismissedConcerns += len(pendingRaises)
				pendingRaises = pendingRaises[:0]
			}

		case m.IsLeadership:
			leadershipOK = true

		default:
			// A raiser circling back with a risk-free, non-negative message
			// acknowledges their own concern.
			if !m.ContainsRiskWord && m.CompoundSentiment >= 0 {
				pendingRaises = acknowledge(pendingRaises, m.Sender)
			}
		}
	}

	// Repeated concern with no adequate leadership response.
	if riskMentions >= 2 && !leadershipOK {
		sum.PersistentClusters++
		for _, idx := range nonLeaderRisks {
			addReason(ci, idx, contracts.ReasonPersistentUnacknowledged)
		}
	}

	// Follow-up doubt after the initial discussion: non-leadership members
	// carrying persistence markers or clearly negative sentiment.
	if concernRaised && len(cl.Members) > 1 {
		for _, idx := range cl.Members {
			m := msgs[idx]
			if m.IsLeadership {
				continue
			}
			if a.matcher.ContainsPersistence(m.Text) || m.CompoundSentiment < lex.ContinuedConcernCutoff {
				addReason(ci, idx, contracts.ReasonContinuedConcern)
			}
		}
	}

	return sum
}

// isDismissal reports whether a message dismisses the concerns before it:
// either an explicit dismissive phrase, or leadership mentioning the risk
// with sentiment above the dismissal cutoff.
func isDismissal(m contracts.ScoredMessage, lex lexicon.Lexicon) bool {
	if m.IsDismissive {
		return true
	}
	return m.IsLeadership && m.ContainsRiskWord && m.CompoundSentiment > lex.DismissalSentimentCutoff
}

// acknowledge drops the pending raises owned by sender.
func acknowledge(raises []pending, sender string) []pending {
	kept := raises[:0]
	for _, p := range raises {
		if p.sender != sender {
			kept = append(kept, p)
		}
	}
	return kept
}
