// Package broker abstracts the message bus used for detached analysis runs
// and result fan-out. Two implementations exist: an in-memory broker for
// single-process runs and tests, and a Redpanda/Kafka broker for deployments.
package broker

import "context"

// Broker abstracts message publishing and consumption.
type Broker interface {
	// Publish sends a message to a topic with an optional key.
	// The in-memory broker ignores the key; Redpanda/Kafka uses it for
	// partition assignment, so records sharing a request ID stay ordered.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Subscribe returns a channel for consuming messages from a topic.
	// groupID coordinates consumer groups in Kafka and is ignored in memory.
	Subscribe(ctx context.Context, topic string, groupID string) (<-chan Message, error)

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is one consumed record.
type Message struct {
	Topic     string
	Key       string
	Value     []byte
	Offset    int64
	Partition int32
	Timestamp int64
}
