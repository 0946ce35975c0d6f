package mq

import (
	"context"
	"errors"
)

var (
	ErrQueueClosed         = errors.New("mq: queue is closed")
	ErrQueueFull           = errors.New("mq: queue is full")
	ErrQueueEmpty          = errors.New("mq: queue is empty")
	ErrQueueClosedAndEmpty = errors.New("mq: queue is closed and empty")
	ErrTimeout             = errors.New("mq: operation timed out")
	ErrNilMessage          = errors.New("mq: message must not be nil")
	ErrDuplicateQueue      = errors.New("mq: queue already registered")
	ErrQueueNotFound       = errors.New("mq: queue not found")
)

// IsTerminal reports whether err means the queue will never deliver again.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrQueueClosedAndEmpty)
}

// waitErr maps a finished context to the error a parked caller returns.
func waitErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
