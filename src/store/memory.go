package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"riskwatch/src/lexicon"
)

// MemoryStore is an in-memory implementation of Store.
// Used for single-process runs and testing.
type MemoryStore struct {
	mu       sync.RWMutex
	lexicons map[string]lexicon.Lexicon
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lexicons: make(map[string]lexicon.Lexicon),
	}
}

// SaveLexicon creates or replaces the lexicon stored under name.
func (s *MemoryStore) SaveLexicon(ctx context.Context, name string, lex lexicon.Lexicon) error {
	if name == "" {
		return fmt.Errorf("lexicon name must not be empty")
	}
	if err := lex.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lexicons[name] = lex
	return nil
}

// GetLexicon returns the lexicon stored under name.
func (s *MemoryStore) GetLexicon(ctx context.Context, name string) (lexicon.Lexicon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lex, ok := s.lexicons[name]
	if !ok {
		return lexicon.Lexicon{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return lex, nil
}

// ListLexicons returns the stored names, sorted.
func (s *MemoryStore) ListLexicons(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.lexicons))
	for name := range s.lexicons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteLexicon removes the lexicon stored under name.
func (s *MemoryStore) DeleteLexicon(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lexicons[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.lexicons, name)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
