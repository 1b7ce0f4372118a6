// Package report renders an analysis result as a Markdown escalation report
// for readers outside the tooling: an executive summary, a timeline of risk
// indicators, communication gaps, and recommended actions.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"riskwatch/src/contracts"
	"riskwatch/src/ranking"
)

const (
	timelineGroupWidth  = 15 * time.Minute
	maxPriorityFindings = 5
)

// Generate renders the escalation report. now stamps the header; pass a fixed
// time for reproducible output.
func Generate(result contracts.AnalysisResult, now time.Time) string {
	if len(result.Flags) == 0 {
		return "No messages were flagged for escalation.\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Risk Escalation Report\n\n")
	fmt.Fprintf(&b, "Generated on: %s · Total flagged messages: %d · Severity: %s\n\n",
		now.Format("2006-01-02 15:04:05"), len(result.Flags), result.Stats.SeverityLevel)

	b.WriteString("## Executive Summary of Key Findings\n\n")
	writeThemes(&b, result.Flags)
	writeSenders(&b, result.Flags)

	b.WriteString("## Priority Findings\n\n")
	writePriorities(&b, result.Flags)

	b.WriteString("## Timeline of Risk Indicators\n\n")
	writeTimeline(&b, result.Flags)

	if len(result.Gaps) > 0 {
		b.WriteString("## Communication Gaps\n\n")
		writeGaps(&b, result.Gaps)
	}

	b.WriteString("## Recommended Actions\n\n")
	b.WriteString("1. Review all flagged messages in their context with the engineering team\n")
	b.WriteString("2. Schedule a focused discussion with team members who raised persistent concerns\n")
	b.WriteString("3. Implement a more structured approach to tracking technical concerns raised by engineers\n")
	b.WriteString("4. Consider creating a technical risk register for this project\n")

	return b.String()
}

func writeThemes(b *strings.Builder, flags []contracts.FlaggedMessage) {
	themes := Themes(flags)
	if len(themes) == 0 {
		return
	}
	for _, tc := range themes {
		fmt.Fprintf(b, "- **%s**: mentioned in %d flagged message(s)\n", tc.Theme, tc.Count)
	}
	b.WriteString("\n")
}

// writePriorities lists the top flags in escalation order. Suppressed
// concerns come first, open concerns after.
func writePriorities(b *strings.Builder, flags []contracts.FlaggedMessage) {
	ranked := ranking.RankFlags(flags).FlattenByTier()
	if len(ranked) > maxPriorityFindings {
		ranked = ranked[:maxPriorityFindings]
	}
	for _, rf := range ranked {
		label := "Open concern"
		if rf.Tier == ranking.TierCritical {
			label = "Suppressed concern"
		}
		fmt.Fprintf(b, "%d. **%s** · %s at %s · %s\n", rf.Rank, label,
			rf.Flag.Sender, rf.Flag.Timestamp.Format("15:04"), joinReasons(rf.Flag.Reasons))
	}
	b.WriteString("\n")
}

// raisingReasons and dismissingReasons split the reason codes into the two
// sides of the exchange the summary contrasts.
var (
	raisingReasons = map[contracts.Reason]bool{
		contracts.ReasonConcernRaised:            true,
		contracts.ReasonPersistentUnacknowledged: true,
		contracts.ReasonContinuedConcern:         true,
	}
	dismissingReasons = map[contracts.Reason]bool{
		contracts.ReasonRiskAndDismissive:      true,
		contracts.ReasonRiskPositiveLeadership: true,
		contracts.ReasonDismissedInCluster:     true,
	}
)

func writeSenders(b *strings.Builder, flags []contracts.FlaggedMessage) {
	raisers := make(map[string]int)
	dismissers := make(map[string]int)
	for _, f := range flags {
		for _, r := range f.Reasons {
			if raisingReasons[r] {
				raisers[f.Sender]++
				break
			}
		}
		for _, r := range f.Reasons {
			if dismissingReasons[r] {
				dismissers[f.Sender]++
				break
			}
		}
	}

	if len(raisers) > 0 {
		b.WriteString("### Team Members Raising Concerns\n\n")
		writeSenderCounts(b, raisers)
	}
	if len(dismissers) > 0 {
		b.WriteString("### Team Members Potentially Downplaying Risks\n\n")
		writeSenderCounts(b, dismissers)
	}
}

func writeSenderCounts(b *strings.Builder, counts map[string]int) {
	type senderCount struct {
		sender string
		count  int
	}
	out := make([]senderCount, 0, len(counts))
	for sender, count := range counts {
		out = append(out, senderCount{sender, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].sender < out[j].sender
	})
	for _, sc := range out {
		fmt.Fprintf(b, "- **%s**: %d message(s)\n", sc.sender, sc.count)
	}
	b.WriteString("\n")
}

// writeTimeline groups flags into fifteen-minute windows so dense exchanges
// read as one beat of the story.
func writeTimeline(b *strings.Builder, flags []contracts.FlaggedMessage) {
	var groupStart time.Time
	open := false
	for _, f := range flags {
		start := f.Timestamp.UTC().Truncate(timelineGroupWidth)
		if !open || !start.Equal(groupStart) {
			if open {
				b.WriteString("\n")
			}
			fmt.Fprintf(b, "### %s\n\n", start.Format("15:04"))
			groupStart = start
			open = true
		}
		fmt.Fprintf(b, "- **%s** in %s: %q\n", f.Sender, f.Channel, f.Text)
		fmt.Fprintf(b, "  - Risk indicator: %s\n", joinReasons(f.Reasons))
	}
	b.WriteString("\n")
}

func writeGaps(b *strings.Builder, gaps []contracts.CommunicationGap) {
	for _, g := range gaps {
		fmt.Fprintf(b, "- %s to %s: concerns from %s received no leadership response\n",
			g.WindowStart.Format("15:04"), g.WindowEnd.Format("15:04"),
			strings.Join(g.ConcernedSenders, ", "))
	}
	b.WriteString("\n")
}

func joinReasons(reasons []contracts.Reason) string {
	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
