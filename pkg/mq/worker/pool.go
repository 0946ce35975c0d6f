package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-mq/pkg/logger"
	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/settings"
	"github.com/huynhanx03/go-mq/pkg/utils"
)

// Handler processes one message. A returned error is logged and counted;
// the worker moves on to the next message.
type Handler[T any] func(ctx context.Context, msg T) error

// Config holds configuration for the Pool.
type Config struct {
	// Workers is the number of concurrent consumers. Defaults to 1.
	Workers int

	// IdleTimeout bounds each wait for a message. A worker that receives
	// nothing for that long stops. Zero means wait until close or cancel.
	IdleTimeout time.Duration

	// Logger receives handler failures and panics. Nil disables logging.
	Logger *zap.Logger
}

// ConfigFromSettings builds a pool config from a queue settings block.
func ConfigFromSettings(cfg settings.MessageQueue, log *zap.Logger) Config {
	return Config{
		Workers:     cfg.Workers,
		IdleTimeout: utils.ToDurationMs(cfg.DequeueTimeout),
		Logger:      log,
	}
}

// Pool runs a fixed set of consumers against one queue.
type Pool[T any] struct {
	src     mq.Receiver[T]
	handle  Handler[T]
	workers int
	idle    time.Duration
	log     *zap.Logger

	processed atomic.Uint64
	failed    atomic.Uint64
}

// NewPool creates a pool. It does not start any goroutine until Run.
func NewPool[T any](src mq.Receiver[T], handle Handler[T], cfg Config) *Pool[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Pool[T]{
		src:     src,
		handle:  handle,
		workers: cfg.Workers,
		idle:    cfg.IdleTimeout,
		log:     logger.OrNop(cfg.Logger).Named("mq.worker"),
	}
}

// Run starts the workers and blocks until every worker has stopped.
// Workers stop when the queue is closed and drained or they sit idle past
// IdleTimeout, in which case Run returns nil, or when ctx ends, in which
// case Run returns the context error even if messages are still pending.
func (p *Pool[T]) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < p.workers; i++ {
		id := i
		g.Go(func() error {
			return p.loop(ctx, id)
		})
	}

	return g.Wait()
}

// Processed returns the number of messages handled successfully.
func (p *Pool[T]) Processed() uint64 { return p.processed.Load() }

// Failed returns the number of messages whose handler errored or panicked.
func (p *Pool[T]) Failed() uint64 { return p.failed.Load() }

func (p *Pool[T]) loop(ctx context.Context, id int) error {
	log := p.log.With(zap.Int("worker", id))
	log.Debug("worker started")

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "worker %d", id)
		}

		msg, err := p.next(ctx)
		if err != nil {
			switch {
			case mq.IsTerminal(err):
				log.Debug("worker stopped: queue drained")
				return nil
			case errors.Is(err, mq.ErrTimeout) && ctx.Err() == nil:
				log.Debug("worker stopped: idle", zap.Duration("idle_timeout", p.idle))
				return nil
			}
			return errors.Wrapf(err, "worker %d", id)
		}

		if err := p.invoke(ctx, msg); err != nil {
			p.failed.Add(1)
			log.Error("handle message failed", zap.Error(err))
			continue
		}
		p.processed.Add(1)
	}
}

// next dequeues one message, bounded by the idle timeout when set.
func (p *Pool[T]) next(ctx context.Context) (T, error) {
	if p.idle <= 0 {
		return p.src.Dequeue(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, p.idle)
	defer cancel()
	return p.src.Dequeue(ctx)
}

// invoke runs the handler, turning a panic into an error so one bad
// message cannot take the worker down.
func (p *Pool[T]) invoke(ctx context.Context, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return p.handle(ctx, msg)
}
