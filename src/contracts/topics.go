package contracts

// Topic names for the optional broker fan-out of analysis results.
const (
	// TopicAnalysisFlags carries one FlagEvent per flagged message.
	// Key: {request_id}
	TopicAnalysisFlags = "riskwatch.analysis.flags"

	// TopicAnalysisStats carries one StatsEvent per completed run.
	// Key: {request_id}
	TopicAnalysisStats = "riskwatch.analysis.stats"

	// TopicRequests carries AnalysisRequest payloads for detached runs.
	// Key: {request_id}
	TopicRequests = "riskwatch.requests"
)

// AnalysisRequest asks a detached pipeline worker to analyze a transcript.
type AnalysisRequest struct {
	RequestID string `json:"request_id"`
	// Path of the transcript on the worker's filesystem.
	TranscriptPath string `json:"transcript_path"`
	// Optional named lexicon set from the lexicon store; empty means defaults.
	Lexicon   string `json:"lexicon,omitempty"`
	Timestamp string `json:"timestamp"`
}

// FlagEvent is the broker representation of one flagged message.
type FlagEvent struct {
	RequestID string         `json:"request_id"`
	Flag      FlaggedMessage `json:"flag"`
}

// StatsEvent is the broker representation of a completed run's aggregates.
type StatsEvent struct {
	RequestID string             `json:"request_id"`
	Stats     ConversationStats  `json:"stats"`
	Gaps      []CommunicationGap `json:"gaps"`
}
