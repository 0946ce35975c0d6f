package batcher

import (
	"go.uber.org/zap"

	"github.com/huynhanx03/go-mq/pkg/settings"
)

// Consumer is the interface that must be implemented by users of the Drainer.
// It is responsible for processing a batch of messages.
type Consumer[T any] interface {
	// Consume processes a batch of messages in queue order.
	// The Drainer hands over ownership of batch.
	Consume(batch []T) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc[T any] func(batch []T) error

func (f ConsumerFunc[T]) Consume(batch []T) error { return f(batch) }

// Config holds configuration for the Drainer.
type Config struct {
	// BatchSize is the largest batch handed to the Consumer at once.
	// Smaller batches are delivered as soon as the queue runs dry.
	BatchSize int

	// Logger receives consumer failures. Nil disables logging.
	Logger *zap.Logger
}

// ConfigFromSettings builds a drainer config from a queue settings block.
func ConfigFromSettings(cfg settings.MessageQueue, log *zap.Logger) Config {
	return Config{BatchSize: cfg.BatchSize, Logger: log}
}
