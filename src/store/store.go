// Package store persists named lexicon sets so teams can share tuned
// keyword lists and thresholds across runs.
package store

import (
	"context"
	"errors"

	"riskwatch/src/lexicon"
)

// ErrNotFound is returned when a named lexicon does not exist.
var ErrNotFound = errors.New("lexicon not found")

// Store defines the interface for persisting named lexicon sets.
type Store interface {
	// SaveLexicon creates or replaces the lexicon stored under name.
	// The lexicon must validate.
	SaveLexicon(ctx context.Context, name string, lex lexicon.Lexicon) error

	// GetLexicon returns the lexicon stored under name.
	// Returns ErrNotFound when no such lexicon exists.
	GetLexicon(ctx context.Context, name string) (lexicon.Lexicon, error)

	// ListLexicons returns the stored names, sorted.
	ListLexicons(ctx context.Context) ([]string, error)

	// DeleteLexicon removes the lexicon stored under name.
	// Returns ErrNotFound when no such lexicon exists.
	DeleteLexicon(ctx context.Context, name string) error

	// Close closes the store connection.
	Close() error
}
