package producer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/settings"
	"github.com/huynhanx03/go-mq/pkg/utils"
)

// ErrThrottled is returned by TrySend when no rate-limit token is available.
var ErrThrottled = errors.New("mq/producer: rate limit exceeded")

// Config defines throttling and timeouts for a Producer.
type Config struct {
	// RateLimit is the maximum sustained messages per second.
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the token-bucket burst size.
	// Defaults to 1 if RateLimit is set but RateBurst is zero.
	RateBurst int

	// Timeout bounds each Send, covering both the rate-limit wait and a wait
	// for space in a full queue. Zero means no per-send deadline.
	Timeout time.Duration
}

// ConfigFromSettings builds a producer config from a queue settings block.
func ConfigFromSettings(cfg settings.MessageQueue) Config {
	return Config{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Timeout:   utils.ToDurationMs(cfg.EnqueueTimeout),
	}
}

// Producer sends messages to a queue, optionally throttled.
// It is safe for concurrent use.
type Producer[T any] struct {
	dst     mq.Sender[T]
	limiter *rate.Limiter
	timeout time.Duration
}

// New creates a Producer writing to dst.
func New[T any](dst mq.Sender[T], cfg Config) *Producer[T] {
	p := &Producer[T]{dst: dst, timeout: cfg.Timeout}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return p
}

// Send enqueues msg, waiting for a rate-limit token and for queue space.
// Queue errors (mq.ErrQueueClosed, mq.ErrTimeout, ...) are returned as is.
func (p *Producer[T]) Send(ctx context.Context, msg T) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			if ctx.Err() == nil || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				// The limiter refuses waits that would overrun the deadline.
				return mq.ErrTimeout
			}
			return ctx.Err()
		}
	}

	return p.dst.Enqueue(ctx, msg)
}

// TrySend enqueues msg only if a token and a queue slot are both free now.
func (p *Producer[T]) TrySend(msg T) error {
	if p.limiter != nil && !p.limiter.Allow() {
		return ErrThrottled
	}
	return p.dst.TryEnqueue(msg)
}

// SendAll sends msgs in order and stops at the first failure. It returns
// how many were sent.
func (p *Producer[T]) SendAll(ctx context.Context, msgs []T) (int, error) {
	for i, msg := range msgs {
		if err := p.Send(ctx, msg); err != nil {
			return i, errors.WithMessagef(err, "send message %d of %d", i+1, len(msgs))
		}
	}
	return len(msgs), nil
}
