// Package main provides the MCP server entry point for riskwatch. The server
// speaks the Model Context Protocol over stdio and exposes transcript
// analysis as tools for LLM clients.
package main

import (
	"fmt"
	"log"
	"os"

	"riskwatch/src/config"
	"riskwatch/src/mcp"
	"riskwatch/src/store"
)

func main() {
	cfg := config.LoadFromEnv()

	// The lexicon store is optional. Without it the analyze_transcript tool
	// still works with the built-in lexicon, it just cannot resolve names.
	var lexicons store.Store
	if cfg.PostgresDSN != "" {
		st, err := store.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "connecting to lexicon store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		lexicons = st
	}

	server := mcp.NewServer(lexicons)
	if err := server.Run(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
