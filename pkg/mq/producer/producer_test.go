package producer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/settings"
)

func TestSend_Unthrottled(t *testing.T) {
	q := mq.New[int]()
	p := New[int](q, Config{})

	n, err := p.SendAll(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, q.Drain())
}

func TestSend_TimeoutOnFullQueue(t *testing.T) {
	q := mq.New[int](mq.WithCapacity(1))
	p := New[int](q, Config{Timeout: 20 * time.Millisecond})

	require.NoError(t, p.Send(context.Background(), 1))
	assert.ErrorIs(t, p.Send(context.Background(), 2), mq.ErrTimeout)
	assert.Equal(t, 1, q.Size())
}

func TestSend_ClosedQueue(t *testing.T) {
	q := mq.New[string]()
	q.Close()
	p := New[string](q, Config{})

	assert.ErrorIs(t, p.Send(context.Background(), "late"), mq.ErrQueueClosed)

	n, err := p.SendAll(context.Background(), []string{"a", "b"})
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, mq.ErrQueueClosed)
}

func TestSend_RateLimited(t *testing.T) {
	q := mq.New[int]()
	// 50 msg/s with burst 1: five sends need at least ~80ms.
	p := New[int](q, Config{RateLimit: 50, RateBurst: 1})

	start := time.Now()
	n, err := p.SendAll(context.Background(), []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestSend_RateLimitExceedsDeadline(t *testing.T) {
	q := mq.New[int]()
	p := New[int](q, Config{RateLimit: 1, RateBurst: 1, Timeout: 10 * time.Millisecond})

	require.NoError(t, p.Send(context.Background(), 1))
	assert.ErrorIs(t, p.Send(context.Background(), 2), mq.ErrTimeout)
	assert.Equal(t, 1, q.Size())
}

func TestSend_Canceled(t *testing.T) {
	q := mq.New[int]()
	p := New[int](q, Config{RateLimit: 1, RateBurst: 1})
	require.NoError(t, p.Send(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Send(ctx, 2), context.Canceled)
}

func TestTrySend(t *testing.T) {
	q := mq.New[int](mq.WithCapacity(1))
	p := New[int](q, Config{RateLimit: 1, RateBurst: 2})

	require.NoError(t, p.TrySend(1))
	assert.ErrorIs(t, p.TrySend(2), mq.ErrQueueFull)
	assert.ErrorIs(t, p.TrySend(3), ErrThrottled, "burst of 2 is spent")
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(settings.MessageQueue{
		Name:           "q",
		RateLimit:      10,
		RateBurst:      5,
		EnqueueTimeout: 250,
	})
	assert.Equal(t, 10.0, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}
