package tui

import (
	"strings"

	"riskwatch/src/contracts"
)

// Item wraps a FlaggedMessage for display in the flag list.
// Implements bubbles/list.Item.
type Item struct {
	Flag contracts.FlaggedMessage
}

// FilterValue is the value used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Flag.Text }

// Title returns the primary text for the item (required by list.Item).
func (i Item) Title() string { return i.Flag.Text }

// Description returns the secondary text for the item (required by list.Item).
func (i Item) Description() string { return i.Flag.Sender }

// ReasonList renders the flag's reason codes as one comma-separated string.
func (i Item) ReasonList() string {
	parts := make([]string, len(i.Flag.Reasons))
	for n, r := range i.Flag.Reasons {
		parts[n] = string(r)
	}
	return strings.Join(parts, ",")
}
