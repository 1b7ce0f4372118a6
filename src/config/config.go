// Package config provides configuration management for the riskwatch tools.
// Everything is optional: with no environment set, runs use the built-in
// lexicon, no broker, and no lexicon database.
package config

import (
	"os"
	"strings"

	"riskwatch/src/lexicon"
)

// Config holds the application configuration.
type Config struct {
	// LexiconFile is a YAML overrides file applied on top of the default
	// lexicon. Empty means defaults only.
	LexiconFile string

	// PostgresDSN is the connection string of the lexicon store.
	// Empty disables the store.
	PostgresDSN string

	// Brokers lists Redpanda/Kafka seed addresses for result publishing.
	// Empty means the in-memory broker.
	Brokers []string
}

// LoadFromEnv loads configuration from environment variables:
// RISKWATCH_LEXICON_FILE, RISKWATCH_PG_DSN, and RISKWATCH_BROKERS
// (comma-separated addresses).
func LoadFromEnv() *Config {
	cfg := &Config{
		LexiconFile: os.Getenv("RISKWATCH_LEXICON_FILE"),
		PostgresDSN: os.Getenv("RISKWATCH_PG_DSN"),
	}

	if brokers := os.Getenv("RISKWATCH_BROKERS"); brokers != "" {
		for _, addr := range strings.Split(brokers, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.Brokers = append(cfg.Brokers, addr)
			}
		}
	}

	return cfg
}

// Lexicon resolves the configured lexicon: the overrides file when set,
// otherwise the built-in default.
func (c *Config) Lexicon() (lexicon.Lexicon, error) {
	if c.LexiconFile == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(c.LexiconFile)
}
