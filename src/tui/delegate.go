package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// listRenderingOverhead accounts for padding added by bubbles/list and
	// the panel border around it.
	listRenderingOverhead = 10

	timeWidth   = 5
	senderWidth = 14
	reasonWidth = 28
)

// Delegate renders flagged messages as single-line table rows.
type Delegate struct {
	styles *StyleConfig
}

// NewDelegate creates a delegate with default styles.
func NewDelegate() Delegate {
	return Delegate{styles: DefaultStyles()}
}

// Height returns the height of a list item.
func (d Delegate) Height() int {
	return 1
}

// Spacing returns spacing between items.
func (d Delegate) Spacing() int {
	return 0
}

// Update handles item updates.
func (d Delegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders one list row: time, sender, reasons, message snippet.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Item)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	timeCol := entry.Flag.Timestamp.UTC().Format("15:04")
	senderCol := TruncateAndPad(entry.Flag.Sender, senderWidth, true)
	reasonCol := TruncateAndPad(entry.ReasonList(), reasonWidth, true)

	fixedWidth := timeWidth + senderWidth + reasonWidth + 9
	availableWidth := m.Width() - fixedWidth - listRenderingOverhead

	var snippet string
	if availableWidth > 0 {
		snippet = TruncateAndPad(cleanText(entry.Flag.Text), availableWidth, true)
	}

	line := fmt.Sprintf("%s │ %s │ %s │ %s", timeCol, senderCol, reasonCol, snippet)

	style := lipgloss.NewStyle().Foreground(d.styles.TextSecondary)
	if isSelected {
		style = style.Bold(true).Foreground(d.styles.PrimaryBlue).Background(d.styles.SelectedColor)
	}

	fmt.Fprint(w, style.Render(line))
}
