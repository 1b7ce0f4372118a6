package gaps

import (
	"testing"
	"time"

	"riskwatch/src/contracts"
)

func at(min, sec int) time.Time {
	return time.Date(2024, 3, 1, 9, min, sec, 0, time.UTC)
}

func sm(ts time.Time, sender string, risk, dismissive, leader bool) contracts.ScoredMessage {
	return contracts.ScoredMessage{
		Message: contracts.Message{
			Timestamp: ts,
			Sender:    sender,
			Channel:   "#eng-ops",
			Text:      "text",
		},
		ContainsRiskWord: risk,
		IsDismissive:     dismissive,
		IsLeadership:     leader,
	}
}

func TestUnansweredConcernIsAGap(t *testing.T) {
	d := New(5 * time.Minute)

	// Concern at 9:01, silence from leadership for the rest of the window and
	// the grace window.
	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "eng1", true, false, false),
		sm(at(2, 30), "eng2", true, false, false),
	}

	got := d.Detect(msgs)
	if len(got) != 1 {
		t.Fatalf("gap count = %d, want 1 (%+v)", len(got), got)
	}
	g := got[0]
	if !g.WindowStart.Equal(at(0, 0)) || !g.WindowEnd.Equal(at(5, 0)) {
		t.Errorf("window = [%v, %v), want [09:00, 09:05)", g.WindowStart, g.WindowEnd)
	}
	want := []string{"eng1", "eng2"}
	if len(g.ConcernedSenders) != 2 || g.ConcernedSenders[0] != want[0] || g.ConcernedSenders[1] != want[1] {
		t.Errorf("concerned senders = %v, want %v", g.ConcernedSenders, want)
	}
	if g.LeadershipResponded {
		t.Error("gap must record that leadership did not respond")
	}
}

func TestLeadershipResponseInWindowClearsGap(t *testing.T) {
	d := New(5 * time.Minute)

	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "eng1", true, false, false),
		sm(at(3, 0), "Director", false, false, true),
	}

	if got := d.Detect(msgs); len(got) != 0 {
		t.Errorf("gaps = %+v, want none when leadership answers in-window", got)
	}
}

func TestLeadershipResponseInGraceWindowClearsGap(t *testing.T) {
	d := New(5 * time.Minute)

	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "eng1", true, false, false),
		sm(at(7, 0), "Director", false, false, true), // next window
	}

	if got := d.Detect(msgs); len(got) != 0 {
		t.Errorf("gaps = %+v, want none when leadership answers in grace window", got)
	}
}

func TestDismissiveLeadershipResponseDoesNotClearGap(t *testing.T) {
	d := New(5 * time.Minute)

	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "eng1", true, false, false),
		sm(at(2, 0), "PM_Lead", false, true, true),
	}

	got := d.Detect(msgs)
	if len(got) != 1 {
		t.Errorf("dismissive leadership reply must still leave a gap, got %+v", got)
	}
}

func TestWindowWithoutRiskIsNeverAGap(t *testing.T) {
	d := New(5 * time.Minute)

	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "eng1", false, false, false),
		sm(at(2, 0), "eng2", false, false, false),
	}

	if got := d.Detect(msgs); len(got) != 0 {
		t.Errorf("gaps = %+v, want none without risk messages", got)
	}
}

func TestLeadershipConcernsDoNotCount(t *testing.T) {
	d := New(5 * time.Minute)

	// Only leadership mentions the risk; the gap rule watches non-leadership
	// concerns.
	msgs := []contracts.ScoredMessage{
		sm(at(1, 0), "Director", true, false, true),
	}

	if got := d.Detect(msgs); len(got) != 0 {
		t.Errorf("gaps = %+v, want none for leadership-raised risk", got)
	}
}

func TestWallClockAlignment(t *testing.T) {
	d := New(5 * time.Minute)

	// 9:07 floors to 9:05 regardless of when the conversation started.
	msgs := []contracts.ScoredMessage{
		sm(at(7, 12), "eng1", true, false, false),
	}

	got := d.Detect(msgs)
	if len(got) != 1 {
		t.Fatalf("gap count = %d, want 1", len(got))
	}
	if !got[0].WindowStart.Equal(at(5, 0)) {
		t.Errorf("window start = %v, want 09:05", got[0].WindowStart)
	}
}

func TestEmptyInput(t *testing.T) {
	d := New(5 * time.Minute)
	if got := d.Detect(nil); got != nil {
		t.Errorf("Detect(nil) = %v, want nil", got)
	}
}

func TestGapsSortedByWindowStart(t *testing.T) {
	d := New(5 * time.Minute)

	msgs := []contracts.ScoredMessage{
		sm(at(16, 0), "eng2", true, false, false),
		sm(at(1, 0), "eng1", true, false, false),
	}

	got := d.Detect(msgs)
	if len(got) != 2 {
		t.Fatalf("gap count = %d, want 2", len(got))
	}
	if !got[0].WindowStart.Before(got[1].WindowStart) {
		t.Error("gaps must be ordered by window start")
	}
}
