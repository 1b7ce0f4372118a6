package report

import (
	"sort"
	"strings"

	"riskwatch/src/contracts"
)

// themeKeywords maps a readable theme name to the substrings that signal it.
// Matching is case-insensitive substring containment, deliberately looser
// than the word-boundary lexicon matching: themes are report color, not flags.
var themeKeywords = map[string][]string{
	"Thermal Issues":  {"thermal", "temperature", "heat", "panel", "warm-up"},
	"Sensor Problems": {"sensor", "reading", "data", "log", "diagnostic"},
	"Anomalies":       {"anomaly", "spike", "deviation", "drift", "fluctuation", "weird"},
	"Dismissal":       {"not urgent", "minor", "probably nothing", "deemed non-blocking", "not a showstopper"},
	"Persistence":     {"still", "again", "not convinced", "hope", "fingers crossed", "ignoring"},
}

// ThemeCount is one theme with the number of flagged messages mentioning it.
type ThemeCount struct {
	Theme string
	Count int
}

// Themes tallies the recurring themes across the flagged messages, most
// frequent first, ties broken by name.
func Themes(flags []contracts.FlaggedMessage) []ThemeCount {
	counts := make(map[string]int)
	for _, f := range flags {
		text := strings.ToLower(f.Text)
		for theme, keywords := range themeKeywords {
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					counts[theme]++
					break
				}
			}
		}
	}

	out := make([]ThemeCount, 0, len(counts))
	for theme, count := range counts {
		out = append(out, ThemeCount{Theme: theme, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Theme < out[j].Theme
	})
	return out
}
