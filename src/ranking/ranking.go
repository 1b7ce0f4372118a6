// Package ranking provides shared priority classification for flagged
// messages. Both the escalation report and the MCP server consume this
// package so that flags are prioritized consistently.
package ranking

import (
	"sort"

	"riskwatch/src/contracts"
)

// Tier constants for flag classification.
const (
	TierCritical = 1 // Suppressed concerns - dismissed or repeatedly ignored
	TierWatch    = 2 // Open concerns - raised but not (yet) suppressed
)

// Per-reason contribution to the priority score. Reasons that indicate a
// concern was actively suppressed weigh more than the concern itself.
var reasonWeights = map[contracts.Reason]float64{
	contracts.ReasonDismissedInCluster:       3.0,
	contracts.ReasonPersistentUnacknowledged: 2.5,
	contracts.ReasonRiskAndDismissive:        2.0,
	contracts.ReasonRiskPositiveLeadership:   1.5,
	contracts.ReasonContinuedConcern:         1.0,
	contracts.ReasonConcernRaised:            0.5,
}

// Reasons that put a flag in the critical tier.
var criticalReasons = map[contracts.Reason]bool{
	contracts.ReasonDismissedInCluster:       true,
	contracts.ReasonPersistentUnacknowledged: true,
	contracts.ReasonRiskAndDismissive:        true,
	contracts.ReasonRiskPositiveLeadership:   true,
}

// RankedFlag wraps a FlaggedMessage with tier and rank information.
type RankedFlag struct {
	Flag  contracts.FlaggedMessage
	Tier  int     // TierCritical (1) or TierWatch (2)
	Rank  int     // Position within the flattened list (1-indexed)
	Score float64 // Priority score the ordering is derived from
}

// TieredFlags groups flags by tier, each tier sorted by priority score.
type TieredFlags struct {
	Critical []RankedFlag // Suppressed concerns (highest signal)
	Watch    []RankedFlag // Open concerns (lower signal)
}

// RankFlags classifies flags into tiers and returns grouped results.
// Each tier is sorted by priority score (descending), then timestamp
// (ascending) for stable output.
func RankFlags(flags []contracts.FlaggedMessage) TieredFlags {
	if len(flags) == 0 {
		return TieredFlags{}
	}

	sorted := make([]RankedFlag, len(flags))
	for i, f := range flags {
		sorted[i] = RankedFlag{
			Flag:  f,
			Tier:  ClassifyTier(f),
			Score: PriorityScore(f),
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Flag.Timestamp.Before(sorted[j].Flag.Timestamp)
	})

	var critical, watch []RankedFlag
	for _, ranked := range sorted {
		switch ranked.Tier {
		case TierCritical:
			critical = append(critical, ranked)
		case TierWatch:
			watch = append(watch, ranked)
		}
	}

	return TieredFlags{
		Critical: critical,
		Watch:    watch,
	}
}

// FlattenByTier returns all flags sorted by tier (critical first, then watch),
// preserving score order within each tier. Assigns global rank (1-indexed).
func (tf TieredFlags) FlattenByTier() []RankedFlag {
	total := len(tf.Critical) + len(tf.Watch)
	if total == 0 {
		return nil
	}

	result := make([]RankedFlag, 0, total)
	result = append(result, tf.Critical...)
	result = append(result, tf.Watch...)

	for i := range result {
		result[i].Rank = i + 1
	}

	return result
}

// Counts returns the count of critical and watch flags.
func (tf TieredFlags) Counts() (critical, watch int) {
	return len(tf.Critical), len(tf.Watch)
}

// ClassifyTier determines which tier a flag belongs to.
// Returns TierCritical (suppressed concern) or TierWatch (open concern).
func ClassifyTier(flag contracts.FlaggedMessage) int {
	for _, r := range flag.Reasons {
		if criticalReasons[r] {
			return TierCritical
		}
	}
	return TierWatch
}

// PriorityScore computes the priority score for a flag: the sum of its reason
// weights plus the magnitude of its sentiment, with a small boost for flags
// backed by a cluster.
func PriorityScore(flag contracts.FlaggedMessage) float64 {
	score := 0.0
	for _, r := range flag.Reasons {
		score += reasonWeights[r]
	}
	if flag.CompoundSentiment < 0 {
		score += -flag.CompoundSentiment
	} else {
		score += flag.CompoundSentiment
	}
	if flag.Cluster >= 0 {
		score += 0.5
	}
	return score
}
