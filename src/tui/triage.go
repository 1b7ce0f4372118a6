// Package tui provides the terminal user interface for reviewing flagged
// messages. It displays an analysis result in a split-view layout: a
// scrollable flag list on top, and the selected flag's detail below with its
// similarity-cluster context.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"riskwatch/src/contracts"
)

// Model is the Bubble Tea model for the flag review TUI.
type Model struct {
	result       contracts.AnalysisResult
	list         list.Model
	styles       *StyleConfig
	width        int
	height       int
	detailScroll int
	lastIndex    int
}

// NewModel creates a Model over one analysis result. Flags arrive already
// sorted by timestamp.
func NewModel(result contracts.AnalysisResult) Model {
	items := make([]list.Item, len(result.Flags))
	for i, f := range result.Flags {
		items[i] = Item{Flag: f}
	}

	l := list.New(items, NewDelegate(), 0, 0)
	l.SetShowStatusBar(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return Model{
		result: result,
		list:   l,
		styles: DefaultStyles(),
	}
}

// Init initializes the model. Required by tea.Model interface.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, m.listHeight())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			m.detailScroll++
			return m, nil
		case "u":
			if m.detailScroll > 0 {
				m.detailScroll--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	// Selecting a different flag resets the detail scroll.
	if m.list.Index() != m.lastIndex {
		m.lastIndex = m.list.Index()
		m.detailScroll = 0
	}
	return m, cmd
}

// listHeight is the height of the flag list: the top quarter of the screen.
func (m Model) listHeight() int {
	available := m.height - 4
	if available < 8 {
		available = 8
	}
	h := available / 4
	if h < 2 {
		h = 2
	}
	return h
}

// View renders the split-view layout.
func (m Model) View() string {
	if m.height == 0 {
		return "Initializing..."
	}
	if len(m.result.Flags) == 0 {
		return "No messages were flagged.\n"
	}

	var b strings.Builder

	st := m.result.Stats
	title := fmt.Sprintf("riskwatch · %d messages · %d flagged · %d clusters · %d gaps · severity ",
		st.TotalMessages, st.FlaggedCount, len(m.result.Clusters), len(m.result.Gaps))
	b.WriteString(m.styles.TitleStyle().Render(title))
	b.WriteString(m.styles.SeverityStyle(st.SeverityLevel).Render(string(st.SeverityLevel)))
	b.WriteString("\n")

	b.WriteString(m.list.View())
	b.WriteString("\n")

	b.WriteString(m.styles.DividerStyle().Render(strings.Repeat("─", max(m.width, 1))))
	b.WriteString("\n")

	detailHeight := m.height - m.listHeight() - 4
	if detailHeight < 4 {
		detailHeight = 4
	}
	detailLines := m.renderDetail()
	start := m.detailScroll
	if start > len(detailLines)-1 {
		start = max(len(detailLines)-1, 0)
	}
	end := min(start+detailHeight, len(detailLines))
	for i := start; i < end; i++ {
		b.WriteString(detailLines[i])
		b.WriteString("\n")
	}
	for i := end - start; i < detailHeight; i++ {
		b.WriteString("\n")
	}

	help := "↑/↓ navigate flags · d/u scroll detail · q quit"
	b.WriteString(m.styles.HelpStyle().Render(help))

	return b.String()
}

// renderDetail generates the detail lines for the selected flag.
func (m Model) renderDetail() []string {
	selected, ok := m.list.SelectedItem().(Item)
	if !ok {
		return []string{"No flag selected"}
	}
	flag := selected.Flag

	wrapWidth := m.width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	var lines []string

	header := fmt.Sprintf("%s · %s in %s · sentiment %+.2f",
		flag.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		flag.Sender, flag.Channel, flag.CompoundSentiment)
	lines = append(lines, m.styles.DetailHeaderStyle().Render(header))
	lines = append(lines, "")

	for _, line := range SplitLines(Wrap(cleanText(flag.Text), wrapWidth)) {
		lines = append(lines, line)
	}
	lines = append(lines, "")

	lines = append(lines, m.styles.DetailHeaderStyle().Render("Reasons"))
	for _, r := range flag.Reasons {
		lines = append(lines, "  "+string(r))
	}

	signals := fmt.Sprintf("risk=%t dismissive=%t leadership=%t downplaying=%t",
		flag.ContainsRiskWord, flag.IsDismissive, flag.IsLeadership, flag.IsDownplaying)
	lines = append(lines, "")
	lines = append(lines, m.styles.ContextStyle().Render(signals))

	if flag.Cluster >= 0 && flag.Cluster < len(m.result.Clusters) {
		lines = append(lines, "")
		lines = append(lines, m.styles.DetailHeaderStyle().Render(
			fmt.Sprintf("Cluster %d context", flag.Cluster)))
		for _, member := range m.result.Clusters[flag.Cluster].Members {
			if member == flag.Index || member >= len(m.result.Messages) {
				continue
			}
			msg := m.result.Messages[member]
			context := fmt.Sprintf("  %s %s: %s",
				msg.Timestamp.UTC().Format("15:04"), msg.Sender,
				Truncate(cleanText(msg.Text), wrapWidth-24, true))
			lines = append(lines, m.styles.ContextStyle().Render(context))
		}
	}

	return lines
}

// Start launches the TUI for one analysis result and blocks until exit.
func Start(result contracts.AnalysisResult) error {
	p := tea.NewProgram(NewModel(result), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// cleanText strips ANSI escapes and collapses whitespace for display.
func cleanText(s string) string {
	return strings.Join(strings.Fields(ansi.Strip(s)), " ")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
