package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"riskwatch/src/broker"
	"riskwatch/src/contracts"
	"riskwatch/src/ingest"
	"riskwatch/src/logger"
)

// Worker consumes analysis requests from the broker, runs the pipeline on the
// referenced transcript, and publishes the results.
type Worker struct {
	pipeline *Pipeline
	broker   broker.Broker
	logger   logger.Logger
	ready    chan struct{}
}

// NewWorker creates a detached pipeline worker.
func NewWorker(p *Pipeline, brk broker.Broker, log logger.Logger) *Worker {
	return &Worker{
		pipeline: p,
		broker:   brk,
		logger:   log,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the worker's subscription is in place. Requests
// published before that may not be seen with the in-memory broker.
func (w *Worker) Ready() <-chan struct{} { return w.ready }

// Run starts the worker's main loop. It subscribes to the requests topic and
// processes requests until the context is cancelled or the channel closes.
func (w *Worker) Run(ctx context.Context) error {
	msgChan, err := w.broker.Subscribe(ctx, contracts.TopicRequests, "riskwatch-pipeline")
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", contracts.TopicRequests, err)
	}

	close(w.ready)
	w.logger.Info("[Worker] Listening for analysis requests on '%s'...", contracts.TopicRequests)

	for {
		select {
		case msg, ok := <-msgChan:
			if !ok {
				w.logger.Info("[Worker] Message channel closed, shutting down")
				return nil
			}
			if err := w.process(ctx, msg); err != nil {
				w.logger.Error("[Worker] Error processing request: %v", err)
			}

		case <-ctx.Done():
			w.logger.Info("[Worker] Context cancelled, shutting down")
			return ctx.Err()
		}
	}
}

func (w *Worker) process(ctx context.Context, msg broker.Message) error {
	var req contracts.AnalysisRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal request: %w", err)
	}

	w.logger.Debug("[Worker] Processing request '%s' for %s", req.RequestID, req.TranscriptPath)

	messages, err := ingest.Load(req.TranscriptPath)
	if err != nil {
		return fmt.Errorf("loading transcript for request '%s': %w", req.RequestID, err)
	}

	result := w.pipeline.Run(req.RequestID, messages)

	w.logger.Info("[Worker] Request '%s': %d messages, %d flags, severity %s",
		req.RequestID, result.Stats.TotalMessages, len(result.Flags), result.Stats.SeverityLevel)

	return Publish(ctx, w.broker, result)
}

// Publish fans an analysis result out on the broker: one FlagEvent per
// flagged message, then a single StatsEvent. The request ID keys every record
// so consumers can group a run's output.
func Publish(ctx context.Context, brk broker.Broker, result contracts.AnalysisResult) error {
	for _, flag := range result.Flags {
		event := contracts.FlagEvent{
			RequestID: result.RequestID,
			Flag:      flag,
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal flag event: %w", err)
		}
		if err := brk.Publish(ctx, contracts.TopicAnalysisFlags, result.RequestID, data); err != nil {
			return fmt.Errorf("failed to publish flag event: %w", err)
		}
	}

	event := contracts.StatsEvent{
		RequestID: result.RequestID,
		Stats:     result.Stats,
		Gaps:      result.Gaps,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stats event: %w", err)
	}
	if err := brk.Publish(ctx, contracts.TopicAnalysisStats, result.RequestID, data); err != nil {
		return fmt.Errorf("failed to publish stats event: %w", err)
	}
	return nil
}
