package batcher

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-mq/pkg/logger"
	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/utils"
)

const (
	defaultBatchSize = 512
	maxBatchSize     = 1 << 16
)

// Drainer moves messages from a queue to a Consumer in batches.
//
// Behavior:
//   - Each Run loop blocks for the first message, then takes whatever else is
//     already pending, up to BatchSize, and flushes it in one Consume call.
//   - Nothing is buffered between flushes: every message taken from the
//     queue reaches the Consumer before Run returns.
//   - Consumer errors are logged and counted; they never stop the loop.
type Drainer[T any] struct {
	src  mq.Receiver[T]
	cons Consumer[T]
	size int
	log  *zap.Logger

	batches  atomic.Uint64
	messages atomic.Uint64
	failures atomic.Uint64
}

// New creates a Drainer reading from src.
func New[T any](src mq.Receiver[T], cons Consumer[T], cfg Config) *Drainer[T] {
	// Default config
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &Drainer[T]{
		src:  src,
		cons: cons,
		size: utils.ClampInt(cfg.BatchSize, 1, maxBatchSize),
		log:  logger.OrNop(cfg.Logger).Named("mq.batcher"),
	}
}

// Run drains until the queue is closed and empty (returns nil) or ctx ends
// (returns the context error). A cancelled Run leaves the rest of the
// backlog in the queue; the batch in flight is still delivered.
func (d *Drainer[T]) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "drain")
		}

		batch, err := d.src.DequeueBatch(ctx, d.size)
		switch {
		case err == nil:
			d.flush(batch)
		case mq.IsTerminal(err):
			return nil
		default:
			return errors.Wrap(err, "drain")
		}
	}
}

// Flush delivers up to BatchSize pending messages without waiting.
// Returns the number of messages delivered.
func (d *Drainer[T]) Flush() int {
	var batch []T
	for len(batch) < d.size {
		msg, err := d.src.TryDequeue()
		if err != nil {
			break
		}
		batch = append(batch, msg)
	}
	if len(batch) > 0 {
		d.flush(batch)
	}
	return len(batch)
}

// Batches returns the number of Consume calls made.
func (d *Drainer[T]) Batches() uint64 { return d.batches.Load() }

// Messages returns the number of messages delivered.
func (d *Drainer[T]) Messages() uint64 { return d.messages.Load() }

// Failures returns the number of Consume calls that returned an error.
func (d *Drainer[T]) Failures() uint64 { return d.failures.Load() }

func (d *Drainer[T]) flush(batch []T) {
	d.batches.Add(1)
	d.messages.Add(uint64(len(batch)))

	if err := d.cons.Consume(batch); err != nil {
		d.failures.Add(1)
		d.log.Warn("consume batch failed", zap.Int("size", len(batch)), zap.Error(err))
	}
}
