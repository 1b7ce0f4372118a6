// Package cluster groups risk-keyword messages into topic clusters by text
// similarity. Clusters are the disjoint connected components of the graph
// whose edges join message pairs with cosine similarity at or above the
// configured threshold, which makes the result independent of iteration
// order.
package cluster

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"riskwatch/src/contracts"
)

// Clusterer groups scored messages by text similarity.
type Clusterer struct {
	threshold float64
}

// New creates a Clusterer with the given similarity threshold in (0, 1].
func New(threshold float64) *Clusterer {
	return &Clusterer{threshold: threshold}
}

// Cluster partitions the risk-keyword subset of msgs into topic clusters.
// Member indices refer into msgs. Members are ordered by timestamp (input
// order for equal timestamps), clusters by their earliest member. An empty
// risk subset yields no clusters.
func (c *Clusterer) Cluster(msgs []contracts.ScoredMessage) []contracts.RiskCluster {
	var candidates []int
	for i, m := range msgs {
		if m.ContainsRiskWord {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	vectors := make([]tokenSet, len(candidates))
	for i, idx := range candidates {
		vectors[i] = tokenize(msgs[idx].Text)
	}

	// Union-find over the candidate positions. O(n²) pairs; the risk subset
	// is small relative to the transcript.
	parent := make([]int, len(candidates))
	for i := range parent {
		parent[i] = i
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if cosine(vectors[i], vectors[j]) >= c.threshold {
				union(parent, i, j)
			}
		}
	}

	// Collect components keyed by root, keeping candidate (timestamp) order.
	groups := make(map[int][]int)
	var roots []int
	for i, idx := range candidates {
		r := find(parent, i)
		if _, seen := groups[r]; !seen {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], idx)
	}

	// Candidates were gathered in input order, and the pipeline sorts input by
	// timestamp, so group members and roots are already chronological. Sorting
	// roots by their first member pins the cluster order regardless of map
	// iteration.
	sort.Slice(roots, func(a, b int) bool {
		return groups[roots[a]][0] < groups[roots[b]][0]
	})

	clusters := make([]contracts.RiskCluster, 0, len(roots))
	for _, r := range roots {
		clusters = append(clusters, contracts.RiskCluster{Members: groups[r]})
	}
	return clusters
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra != rb {
		// Attach the larger root under the smaller so roots stay stable
		// regardless of edge order.
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}
}

// tokenSet is a binary (presence) vector over a message's token vocabulary.
type tokenSet map[string]struct{}

// tokenize lowercases the text and splits it on any rune that is not a letter
// or digit. Presence, not counts: repeated words do not weigh a message.
func tokenize(text string) tokenSet {
	set := make(tokenSet)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		set[tok] = struct{}{}
	}
	return set
}

// Similarity returns the cosine similarity of two texts under the clusterer's
// token model. Symmetric by construction.
func Similarity(a, b string) float64 {
	return cosine(tokenize(a), tokenize(b))
}

// cosine computes the similarity of two binary token vectors:
// shared / sqrt(|A|·|B|). Empty vectors have zero similarity to everything.
func cosine(a, b tokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Iterate the smaller set.
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / math.Sqrt(float64(len(a))*float64(len(b)))
}
