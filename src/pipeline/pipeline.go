// Package pipeline wires the analysis stages together: score, cluster,
// dismissal, gaps, stats. The same Pipeline backs the CLI, the MCP server,
// and the broker worker, so every entry point produces identical results.
package pipeline

import (
	"fmt"
	"sort"

	"riskwatch/src/cluster"
	"riskwatch/src/contracts"
	"riskwatch/src/dismissal"
	"riskwatch/src/gaps"
	"riskwatch/src/lexicon"
	"riskwatch/src/score"
	"riskwatch/src/stats"
)

// Pipeline runs the full analysis for one transcript. Safe for reuse across
// runs; each Run is independent.
type Pipeline struct {
	matcher   *lexicon.Matcher
	scorer    *score.Scorer
	clusterer *cluster.Clusterer
	dismissal *dismissal.Analyzer
	gaps      *gaps.Detector
	stats     *stats.Analyzer
}

// New builds a pipeline from a lexicon. The lexicon is validated and its
// phrase lists compiled once, up front.
func New(lex lexicon.Lexicon) (*Pipeline, error) {
	m, err := lexicon.Compile(lex)
	if err != nil {
		return nil, fmt.Errorf("compiling lexicon: %w", err)
	}
	return &Pipeline{
		matcher:   m,
		scorer:    score.NewScorer(m),
		clusterer: cluster.New(lex.SimilarityThreshold),
		dismissal: dismissal.New(m),
		gaps:      gaps.New(lex.WindowWidth),
		stats:     stats.New(m),
	}, nil
}

// Matcher exposes the compiled lexicon matcher for callers that need direct
// phrase checks (reports, tooling).
func (p *Pipeline) Matcher() *lexicon.Matcher { return p.matcher }

// Run analyzes one transcript. Input order does not matter; messages are
// sorted by timestamp before any stage sees them. Empty input yields a result
// with empty slices and Low severity.
func (p *Pipeline) Run(requestID string, msgs []contracts.Message) contracts.AnalysisResult {
	ordered := make([]contracts.Message, len(msgs))
	copy(ordered, msgs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	scored := p.scorer.ScoreAll(ordered)
	clusters := p.clusterer.Cluster(scored)
	flags, summary := p.dismissal.Analyze(scored, clusters)
	gapList := p.gaps.Detect(scored)
	st := p.stats.Aggregate(scored, flags, summary)

	return contracts.AnalysisResult{
		RequestID: requestID,
		Messages:  scored,
		Flags:     flags,
		Clusters:  clusters,
		Gaps:      gapList,
		Stats:     st,
	}
}
