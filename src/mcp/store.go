package mcp

import (
	"sync"

	"riskwatch/src/contracts"
)

// ResultStore holds completed analysis results for drill-down tool calls.
type ResultStore interface {
	// Store saves the result of one analysis run.
	Store(result contracts.AnalysisResult)
	// Get retrieves a result by request ID.
	Get(requestID string) (contracts.AnalysisResult, bool)
}

// InMemoryStore is a thread-safe in-memory implementation of ResultStore.
// Results live for the lifetime of the server process.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string]contracts.AnalysisResult
}

// NewInMemoryStore creates a new in-memory result store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		results: make(map[string]contracts.AnalysisResult),
	}
}

// Store saves the result of one analysis run, keyed by request ID.
func (s *InMemoryStore) Store(result contracts.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.RequestID] = result
}

// Get retrieves a result by request ID.
func (s *InMemoryStore) Get(requestID string) (contracts.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[requestID]
	return r, ok
}
