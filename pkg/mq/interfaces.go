package mq

import "context"

// Sender is the producer side of a queue.
type Sender[T any] interface {
	Enqueue(ctx context.Context, msg T) error
	TryEnqueue(msg T) error
}

// Receiver is the consumer side of a queue.
type Receiver[T any] interface {
	Dequeue(ctx context.Context) (T, error)
	TryDequeue() (T, error)
	DequeueBatch(ctx context.Context, limit int) ([]T, error)
}

// Stater is the payload-independent view of a queue used by registries and
// diagnostics.
type Stater interface {
	Name() string
	ID() string
	State() State
	Stats() Stats
	Close()
}
