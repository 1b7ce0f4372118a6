// Package main runs the detached riskwatch pipeline worker. It consumes
// analysis requests from the broker, analyzes the referenced transcripts, and
// publishes flag and stats events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"riskwatch/src/broker"
	"riskwatch/src/config"
	"riskwatch/src/logger"
	"riskwatch/src/pipeline"
)

func main() {
	log := logger.NewConsoleLogger()

	cfg := config.LoadFromEnv()
	if len(cfg.Brokers) == 0 {
		fmt.Fprintln(os.Stderr, "no broker configured: set RISKWATCH_BROKERS")
		os.Exit(1)
	}

	lex, err := cfg.Lexicon()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading lexicon: %v\n", err)
		os.Exit(1)
	}

	p, err := pipeline.New(lex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building pipeline: %v\n", err)
		os.Exit(1)
	}

	brk, err := broker.NewRedpandaBroker(cfg.Brokers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to broker: %v\n", err)
		os.Exit(1)
	}
	defer brk.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("[Worker] Received signal %v, shutting down", sig)
		cancel()
	}()

	worker := pipeline.NewWorker(p, brk, log)
	log.Info("[Worker] Starting pipeline worker (brokers: %v)", cfg.Brokers)
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}
