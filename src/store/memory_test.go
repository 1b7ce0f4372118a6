package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"riskwatch/src/lexicon"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	lex := lexicon.Default()
	lex.SimilarityThreshold = 0.5
	lex.WindowWidth = 10 * time.Minute

	if err := s.SaveLexicon(ctx, "strict", lex); err != nil {
		t.Fatalf("SaveLexicon: %v", err)
	}

	got, err := s.GetLexicon(ctx, "strict")
	if err != nil {
		t.Fatalf("GetLexicon: %v", err)
	}
	if got.SimilarityThreshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", got.SimilarityThreshold)
	}
	if got.WindowWidth != 10*time.Minute {
		t.Errorf("window width = %v, want 10m", got.WindowWidth)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	_, err := s.GetLexicon(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveRejectsInvalid(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	bad := lexicon.Default()
	bad.RiskKeywords = nil
	if err := s.SaveLexicon(ctx, "bad", bad); err == nil {
		t.Error("expected error saving invalid lexicon")
	}

	if err := s.SaveLexicon(ctx, "", lexicon.Default()); err == nil {
		t.Error("expected error saving with empty name")
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for _, name := range []string{"ops", "default", "strict"} {
		if err := s.SaveLexicon(ctx, name, lexicon.Default()); err != nil {
			t.Fatalf("SaveLexicon(%s): %v", name, err)
		}
	}

	names, err := s.ListLexicons(ctx)
	if err != nil {
		t.Fatalf("ListLexicons: %v", err)
	}
	want := []string{"default", "ops", "strict"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.SaveLexicon(ctx, "tmp", lexicon.Default()); err != nil {
		t.Fatalf("SaveLexicon: %v", err)
	}
	if err := s.DeleteLexicon(ctx, "tmp"); err != nil {
		t.Fatalf("DeleteLexicon: %v", err)
	}
	if err := s.DeleteLexicon(ctx, "tmp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	lex := lexicon.Default()
	lex.RiskKeywords = []string{"leak", "overrun"}
	lex.WindowWidth = 90 * time.Second
	lex.FlagRateHighCutoff = 0.4

	data, err := lexicon.Encode(lex)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := lexicon.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.WindowWidth != 90*time.Second {
		t.Errorf("window width = %v, want 90s", got.WindowWidth)
	}
	if len(got.RiskKeywords) != 2 || got.RiskKeywords[0] != "leak" {
		t.Errorf("risk keywords = %v", got.RiskKeywords)
	}
	if got.FlagRateHighCutoff != 0.4 {
		t.Errorf("high cutoff = %v, want 0.4", got.FlagRateHighCutoff)
	}
}
