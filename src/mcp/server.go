// Package mcp exposes transcript analysis as MCP tools so coding agents can
// run the pipeline and drill into individual flags over stdio.
package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"riskwatch/src/contracts"
	"riskwatch/src/ingest"
	"riskwatch/src/lexicon"
	"riskwatch/src/pipeline"
	"riskwatch/src/ranking"
	"riskwatch/src/sanitize"
	"riskwatch/src/store"
)

// Server is the riskwatch MCP server.
type Server struct {
	mcpServer *server.MCPServer
	results   ResultStore
	lexicons  store.Store // optional; nil means only the default lexicon
}

// NewServer creates a new MCP server. lexicons may be nil, in which case the
// lexicon parameter of analyze_transcript is rejected.
func NewServer(lexicons store.Store) *Server {
	s := server.NewMCPServer(
		"riskwatch",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		results:   NewInMemoryStore(),
		lexicons:  lexicons,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	analyzeTool := mcp.NewTool("analyze_transcript",
		mcp.WithDescription("Analyze a conversation transcript (CSV or JSON) for downplayed technical risks. Returns a manifest with conversation stats and one summary line per flagged message; use get_flag_details to drill into a flag with its cluster context."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Filesystem path of the transcript (.csv or .json)"),
		),
		mcp.WithString("lexicon",
			mcp.Description("Named lexicon set to analyze with (default: built-in lexicon)"),
		),
	)

	detailsTool := mcp.NewTool("get_flag_details",
		mcp.WithDescription("Get full details for a flagged message, including the other messages of its similarity cluster. Use after analyze_transcript."),
		mcp.WithString("request_id",
			mcp.Required(),
			mcp.Description("Request ID from analyze_transcript response"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Message index from the manifest"),
		),
	)

	s.mcpServer.AddTool(analyzeTool, s.handleAnalyzeTranscript)
	s.mcpServer.AddTool(detailsTool, s.handleGetFlagDetails)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// Manifest is the lightweight analyze_transcript response.
type Manifest struct {
	RequestID string                      `json:"request_id"`
	Stats     contracts.ConversationStats `json:"stats"`
	Flags     []FlagSummary               `json:"flags"`
	Clusters  int                         `json:"clusters"`
	Gaps      int                         `json:"gaps"`
}

// FlagSummary is one manifest line per flagged message. Priority is the
// 1-indexed escalation rank across all flags; suppressed concerns rank ahead
// of open ones.
type FlagSummary struct {
	Index     int                `json:"index"`
	Timestamp time.Time          `json:"timestamp"`
	Sender    string             `json:"sender"`
	Snippet   string             `json:"snippet"`
	Reasons   []contracts.Reason `json:"reasons"`
	Cluster   int                `json:"cluster"`
	Priority  int                `json:"priority"`
}

// snippetLength bounds manifest lines so large transcripts stay cheap to
// hand to an LLM.
const snippetLength = 120

// FlagDetails is the get_flag_details response: the flag plus its cluster's
// other messages for context.
type FlagDetails struct {
	Flag           contracts.FlaggedMessage  `json:"flag"`
	ClusterContext []contracts.ScoredMessage `json:"cluster_context,omitempty"`
}

// handleAnalyzeTranscript handles the analyze_transcript tool call.
func (s *Server) handleAnalyzeTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	lex := lexicon.Default()
	if name := request.GetString("lexicon", ""); name != "" {
		if s.lexicons == nil {
			return mcp.NewToolResultError("no lexicon store configured, only the default lexicon is available"), nil
		}
		var err error
		lex, err = s.lexicons.GetLexicon(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown lexicon: %s", name)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading lexicon: %v", err)), nil
		}
	}

	p, err := pipeline.New(lex)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building pipeline: %v", err)), nil
	}

	messages, err := ingest.Load(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading transcript: %v", err)), nil
	}

	result := p.Run(generateRequestID(), messages)
	s.results.Store(result)

	manifest := toManifest(result)
	jsonBytes, err := json.Marshal(manifest)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// handleGetFlagDetails handles the get_flag_details tool call.
func (s *Server) handleGetFlagDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := request.GetString("request_id", "")
	if requestID == "" {
		return mcp.NewToolResultError("request_id parameter is required"), nil
	}
	index := request.GetInt("index", -1)
	if index < 0 {
		return mcp.NewToolResultError("index parameter is required"), nil
	}

	result, found := s.results.Get(requestID)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("unknown request_id: %s", requestID)), nil
	}

	details, found := flagDetails(result, index)
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no flag with index %d in request %s", index, requestID)), nil
	}

	jsonBytes, err := json.Marshal(details)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal flag: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func toManifest(result contracts.AnalysisResult) Manifest {
	priorities := make(map[int]int, len(result.Flags))
	for _, rf := range ranking.RankFlags(result.Flags).FlattenByTier() {
		priorities[rf.Flag.Index] = rf.Rank
	}

	flags := make([]FlagSummary, len(result.Flags))
	for i, f := range result.Flags {
		flags[i] = FlagSummary{
			Index:     f.Index,
			Timestamp: f.Timestamp,
			Sender:    f.Sender,
			Snippet:   sanitize.Snippet(f.Text, snippetLength),
			Reasons:   f.Reasons,
			Cluster:   f.Cluster,
			Priority:  priorities[f.Index],
		}
	}
	return Manifest{
		RequestID: result.RequestID,
		Stats:     result.Stats,
		Flags:     flags,
		Clusters:  len(result.Clusters),
		Gaps:      len(result.Gaps),
	}
}

func flagDetails(result contracts.AnalysisResult, index int) (FlagDetails, bool) {
	for _, f := range result.Flags {
		if f.Index != index {
			continue
		}
		details := FlagDetails{Flag: f}
		if f.Cluster >= 0 && f.Cluster < len(result.Clusters) {
			for _, member := range result.Clusters[f.Cluster].Members {
				if member != index && member < len(result.Messages) {
					details.ClusterContext = append(details.ClusterContext, result.Messages[member])
				}
			}
		}
		return details, true
	}
	return FlagDetails{}, false
}

// generateRequestID creates a unique request identifier.
func generateRequestID() string {
	timestamp := time.Now().UTC().Format("20060102T150405")
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("req-%s-%s", timestamp, hex.EncodeToString(randomBytes))
}
