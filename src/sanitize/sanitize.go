// Package sanitize provides utilities for cleaning transcript text for LLM
// consumption. It removes ANSI escape codes and control characters and
// collapses whitespace to produce clean, compact text suitable for MCP tool
// responses.
//
// This package is specifically for MCP output sanitization. For TUI
// rendering, use the tui package which has its own ANSI handling via
// charmbracelet/x/ansi.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// ANSI escape codes: \x1b[...m (SGR sequences)
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	// Remaining control characters, excluding tab and newline which are
	// collapsed as whitespace below.
	controlPattern = regexp.MustCompile(`[\x00-\x08\x0b-\x1f\x7f]`)
)

// Clean removes ANSI escape codes and control characters and collapses runs
// of whitespace into single spaces.
func Clean(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Snippet cleans s and truncates it to at most max runes, appending "..."
// when text was cut. max <= 3 returns the cleaned text unchanged.
func Snippet(s string, max int) string {
	s = Clean(s)
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
