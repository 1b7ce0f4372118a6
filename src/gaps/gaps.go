// Package gaps finds time windows where concerns raised by non-leadership
// senders go unanswered by leadership.
//
// Windows are fixed-size, non-overlapping, and wall-clock aligned: every
// timestamp is floored to a multiple of the window width in UTC. A window is
// a gap when it holds at least one risk-keyword message from a non-leadership
// sender and neither it nor the immediately following window holds a
// non-dismissive leadership message.
package gaps

import (
	"sort"
	"time"

	"riskwatch/src/contracts"
)

// Detector partitions a scored sequence into windows and marks gaps.
type Detector struct {
	width time.Duration
}

// New creates a Detector with the given window width.
func New(width time.Duration) *Detector {
	return &Detector{width: width}
}

// window aggregates what happened inside one time window.
type window struct {
	start             time.Time
	concernedSenders  []string
	senderSeen        map[string]struct{}
	leadershipAnswers bool // leadership posted something non-dismissive
}

// Detect returns the communication gaps of the sequence, ordered by window
// start. msgs may arrive in any order; windowing is keyed purely on floored
// timestamps. Empty input yields no gaps.
func (d *Detector) Detect(msgs []contracts.ScoredMessage) []contracts.CommunicationGap {
	if len(msgs) == 0 {
		return nil
	}

	windows := make(map[time.Time]*window)
	get := func(start time.Time) *window {
		w, ok := windows[start]
		if !ok {
			w = &window{start: start, senderSeen: make(map[string]struct{})}
			windows[start] = w
		}
		return w
	}

	for _, m := range msgs {
		start := m.Timestamp.UTC().Truncate(d.width)
		w := get(start)

		if m.ContainsRiskWord && !m.IsLeadership {
			if _, seen := w.senderSeen[m.Sender]; !seen {
				w.senderSeen[m.Sender] = struct{}{}
				w.concernedSenders = append(w.concernedSenders, m.Sender)
			}
		}
		if m.IsLeadership && !m.IsDismissive {
			w.leadershipAnswers = true
		}
	}

	starts := make([]time.Time, 0, len(windows))
	for start := range windows {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	var out []contracts.CommunicationGap
	for _, start := range starts {
		w := windows[start]
		if len(w.concernedSenders) == 0 {
			// Windows without risk concerns are never gaps.
			continue
		}

		responded := w.leadershipAnswers
		if !responded {
			// Grace window: an answer in the immediately following window
			// still counts.
			if next, ok := windows[start.Add(d.width)]; ok && next.leadershipAnswers {
				responded = true
			}
		}
		if responded {
			continue
		}

		sort.Strings(w.concernedSenders)
		out = append(out, contracts.CommunicationGap{
			WindowStart:         start,
			WindowEnd:           start.Add(d.width),
			ConcernedSenders:    w.concernedSenders,
			LeadershipResponded: false,
		})
	}
	return out
}
