// Package contracts defines the data model shared by the analysis pipeline,
// the CLI/TUI, the MCP server, and the broker publishers.
package contracts

import "time"

// Message is a single transcript record. Created once by the ingest layer and
// never mutated afterwards.
type Message struct {
	// Time the message was sent. Monotonic ordering key for the pipeline.
	Timestamp time.Time `json:"timestamp"`
	// Sender identity as it appears in the transcript (e.g. "Engineer_1").
	Sender string `json:"sender"`
	// Channel the message was posted in (e.g. "#eng-ops").
	Channel string `json:"channel"`
	// Raw message text. May be empty; empty text scores neutral.
	Text string `json:"message"`
}

// ScoredMessage is a Message plus the per-message signals derived from it.
// All derived fields are pure functions of (text, sender, lexicon).
type ScoredMessage struct {
	Message
	// Compound polarity score in [-1, 1].
	CompoundSentiment float64 `json:"compound_sentiment"`
	// True when the text contains at least one configured risk keyword.
	ContainsRiskWord bool `json:"contains_risk_word"`
	// True when the text contains at least one configured dismissive phrase.
	IsDismissive bool `json:"is_dismissive"`
	// True when the sender is in the configured leadership set.
	IsLeadership bool `json:"is_leadership"`
	// True when the message appears to downplay a risk (see score.FlagDownplaying).
	IsDownplaying bool `json:"is_downplaying"`
}

// Reason identifies why a message was flagged. A flagged message carries the
// union of every reason that matched it.
type Reason string

const (
	// ReasonRiskAndDismissive: risk keyword and dismissive phrase in one message.
	ReasonRiskAndDismissive Reason = "RISK_AND_DISMISSIVE"
	// ReasonRiskPositiveLeadership: leadership framing a risk with positive sentiment.
	ReasonRiskPositiveLeadership Reason = "RISK_POSITIVE_LEADERSHIP"
	// ReasonDismissedInCluster: dismissive message following a raised concern
	// within the same topic cluster. Tagged on the dismissive message.
	ReasonDismissedInCluster Reason = "DISMISSED_IN_CLUSTER"
	// ReasonPersistentUnacknowledged: the same concern surfaced repeatedly in a
	// cluster without a non-dismissive leadership response.
	ReasonPersistentUnacknowledged Reason = "PERSISTENT_UNACKNOWLEDGED"
	// ReasonConcernRaised: non-leadership sender raising a risk with negative sentiment.
	ReasonConcernRaised Reason = "CONCERN_RAISED"
	// ReasonContinuedConcern: non-leadership follow-up doubt after the initial discussion.
	ReasonContinuedConcern Reason = "CONTINUED_CONCERN"
)

// FlaggedMessage is one entry of the authoritative output list. Index refers
// back into the scored-message sequence, so consumers can recover context.
type FlaggedMessage struct {
	// Index of the message in the original (timestamp-sorted) sequence.
	Index int `json:"index"`
	// The scored message itself, copied for self-contained output.
	ScoredMessage
	// Reasons this message was flagged, sorted, no duplicates.
	Reasons []Reason `json:"reasons"`
	// Cluster holding this message, -1 when the flag did not come from a cluster.
	Cluster int `json:"cluster"`
}

// RiskCluster is a group of topically related risk-keyword messages.
// Members are indices into the scored-message sequence, ordered by timestamp.
// Clusters are disjoint connected components of the similarity graph.
type RiskCluster struct {
	Members []int `json:"members"`
}

// CommunicationGap marks a time window where non-leadership concerns received
// no adequate leadership response.
type CommunicationGap struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	// Senders (non-leadership) whose risk messages fell in the window.
	ConcernedSenders []string `json:"concerned_senders"`
	// True when leadership replied inside the window or its grace window with a
	// non-dismissive message.
	LeadershipResponded bool `json:"leadership_responded"`
}

// Severity is the aggregate risk posture of a conversation.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// ConversationStats aggregates the whole scored sequence. Recomputed fully on
// each run.
type ConversationStats struct {
	TotalMessages   int            `json:"total_messages"`
	PerSenderCounts map[string]int `json:"per_sender_counts"`
	PerChannelCount map[string]int `json:"per_channel_counts"`
	MeanSentiment   float64        `json:"mean_sentiment"`
	// Per-message compound sentiments in sequence order.
	SentimentTrend []float64 `json:"sentiment_trend,omitempty"`
	FirstTimestamp time.Time `json:"first_timestamp"`
	LastTimestamp  time.Time `json:"last_timestamp"`
	// LastTimestamp - FirstTimestamp; zero for empty or single-message input.
	Duration time.Duration `json:"duration"`

	RiskKeywordCount int     `json:"risk_keyword_count"`
	DismissiveCount  int     `json:"dismissive_count"`
	LeadershipCount  int     `json:"leadership_count"`
	FlaggedCount     int     `json:"flagged_count"`
	FlagRate         float64 `json:"flag_rate"`

	// Fraction of risk messages later dismissed within their cluster.
	DismissalFactor float64 `json:"dismissal_factor"`
	// Fraction of clusters with repeated unacknowledged concerns.
	PersistenceFactor float64 `json:"persistence_factor"`
	// True when any flagged message mentions a high-impact keyword.
	ImpactKeywords bool     `json:"impact_keywords"`
	SeverityLevel  Severity `json:"severity_level"`
}

// AnalysisResult bundles every pipeline output for one transcript.
type AnalysisResult struct {
	RequestID string             `json:"request_id"`
	Messages  []ScoredMessage    `json:"messages"`
	Flags     []FlaggedMessage   `json:"flags"`
	Clusters  []RiskCluster      `json:"clusters"`
	Gaps      []CommunicationGap `json:"gaps"`
	Stats     ConversationStats  `json:"stats"`
}
