// Demo program to showcase the riskwatch TUI with a rich, realistic transcript.
package main

import (
	"fmt"
	"os"
	"time"

	"riskwatch/src/contracts"
	"riskwatch/src/lexicon"
	"riskwatch/src/pipeline"
	"riskwatch/src/tui"
)

func main() {
	fmt.Println("Generating sample conversation...")
	messages := generateSampleTranscript()

	p, err := pipeline.New(lexicon.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pipeline: %v\n", err)
		os.Exit(1)
	}
	result := p.Run("req-demo", messages)

	fmt.Printf("Analyzed %d messages, flagged %d across %d clusters.\n",
		result.Stats.TotalMessages, result.Stats.FlaggedCount, len(result.Clusters))
	fmt.Println("Launching TUI...")
	time.Sleep(500 * time.Millisecond) // Brief pause for effect

	if err := tui.Start(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func generateSampleTranscript() []contracts.Message {
	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	msg := func(min int, sender, channel, text string) contracts.Message {
		return contracts.Message{
			Timestamp: base.Add(time.Duration(min) * time.Minute),
			Sender:    sender,
			Channel:   channel,
			Text:      text,
		}
	}

	return []contracts.Message{
		// A thermal concern raised, dismissed, and raised again.
		msg(0, "Engineer_1", "#ops",
			"Morning all, kicking off the burn-in run for the v3 controller."),
		msg(3, "Engineer_1", "#ops",
			"Seeing a worrying thermal deviation spike on sensor bank 2, the readings are way outside the expected envelope."),
		msg(5, "PM_Lead", "#ops",
			"Not a big deal, the thermal deviation spike is probably just calibration drift. Let's keep the schedule."),
		msg(9, "Engineer_1", "#ops",
			"The thermal deviation spike is still there after recalibration. I am not convinced this is fine."),
		msg(12, "Engineer_2", "#ops",
			"Seconding that, the same spike shows up in my bench data too. This failure mode worries me."),
		msg(14, "PM_Lead", "#ops",
			"We've seen noise like this before, it's within tolerance. Moving on."),

		// A separate sensor dropout thread in another channel.
		msg(20, "Engineer_3", "#hardware",
			"Quick flag: intermittent sensor dropout on the telemetry bus during the vibration test. Could be a connector problem."),
		msg(24, "Eng_Manager", "#hardware",
			"Thanks for raising it. Can you capture a trace next time it drops? We should understand this before the review."),
		msg(27, "Engineer_3", "#hardware",
			"Will do, trace capture armed."),

		// Routine chatter that should stay unflagged.
		msg(31, "Engineer_2", "#ops",
			"Lunch orders going in at noon, usual place."),
		msg(33, "QA_Lead", "#ops",
			"Test matrix for Thursday is posted, please sign up for slots."),

		// A late concern that never gets an answer.
		msg(52, "Engineer_1", "#ops",
			"Burn-in just tripped the overtemperature alarm on bank 2. This is a serious problem, we should halt the run."),
		msg(54, "Engineer_2", "#ops",
			"Agreed, the anomaly is getting worse, not better."),
	}
}
