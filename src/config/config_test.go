package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("empty environment", func(t *testing.T) {
		t.Setenv("RISKWATCH_LEXICON_FILE", "")
		t.Setenv("RISKWATCH_PG_DSN", "")
		t.Setenv("RISKWATCH_BROKERS", "")

		cfg := LoadFromEnv()
		if cfg.LexiconFile != "" || cfg.PostgresDSN != "" || len(cfg.Brokers) != 0 {
			t.Errorf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("all set", func(t *testing.T) {
		t.Setenv("RISKWATCH_LEXICON_FILE", "/etc/riskwatch/lexicon.yaml")
		t.Setenv("RISKWATCH_PG_DSN", "postgres://localhost/riskwatch")
		t.Setenv("RISKWATCH_BROKERS", "localhost:19092, localhost:29092")

		cfg := LoadFromEnv()
		if cfg.LexiconFile != "/etc/riskwatch/lexicon.yaml" {
			t.Errorf("lexicon file = %s", cfg.LexiconFile)
		}
		if cfg.PostgresDSN != "postgres://localhost/riskwatch" {
			t.Errorf("dsn = %s", cfg.PostgresDSN)
		}
		if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "localhost:19092" || cfg.Brokers[1] != "localhost:29092" {
			t.Errorf("brokers = %v", cfg.Brokers)
		}
	})

	t.Run("trailing comma in brokers", func(t *testing.T) {
		t.Setenv("RISKWATCH_BROKERS", "localhost:19092,")

		cfg := LoadFromEnv()
		if len(cfg.Brokers) != 1 {
			t.Errorf("brokers = %v, want one address", cfg.Brokers)
		}
	})
}

func TestConfigLexicon(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		cfg := &Config{}
		lex, err := cfg.Lexicon()
		if err != nil {
			t.Fatalf("Lexicon() error: %v", err)
		}
		if len(lex.RiskKeywords) == 0 {
			t.Error("default lexicon has no risk keywords")
		}
	})

	t.Run("overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lexicon.yaml")
		if err := os.WriteFile(path, []byte("window_width: 10m\n"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		cfg := &Config{LexiconFile: path}
		lex, err := cfg.Lexicon()
		if err != nil {
			t.Fatalf("Lexicon() error: %v", err)
		}
		if lex.WindowWidth != 10*time.Minute {
			t.Errorf("window width = %v, want 10m", lex.WindowWidth)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &Config{LexiconFile: filepath.Join(t.TempDir(), "nope.yaml")}
		if _, err := cfg.Lexicon(); err == nil {
			t.Error("expected error for missing overrides file")
		}
	})
}
