package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/huynhanx03/go-mq/pkg/mq"
	"github.com/huynhanx03/go-mq/pkg/settings"
)

func TestPool_ProcessesEveryMessageOnce(t *testing.T) {
	q := mq.New[int](mq.WithCapacity(16))

	var mu sync.Mutex
	seen := make(map[int]int)
	pool := NewPool[int](q, func(_ context.Context, msg int) error {
		mu.Lock()
		seen[msg]++
		mu.Unlock()
		return nil
	}, Config{Workers: 4})

	done := make(chan error, 1)
	go func() { done <- pool.Run(context.Background()) }()

	const total = 1000
	for i := 0; i < total; i++ {
		require.NoError(t, q.Enqueue(context.Background(), i))
	}
	q.Close()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after queue drained")
	}

	assert.Len(t, seen, total)
	for msg, n := range seen {
		assert.Equal(t, 1, n, "message %d", msg)
	}
	assert.Equal(t, uint64(total), pool.Processed())
	assert.Equal(t, uint64(0), pool.Failed())
}

func TestPool_HandlerErrorsAndPanics(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	q := mq.New[string]()

	pool := NewPool[string](q, func(_ context.Context, msg string) error {
		switch msg {
		case "fail":
			return errors.New("boom")
		case "panic":
			panic("unexpected payload")
		}
		return nil
	}, Config{Logger: zap.New(core)})

	for _, m := range []string{"ok", "fail", "panic", "ok"} {
		require.NoError(t, q.TryEnqueue(m))
	}
	q.Close()

	require.NoError(t, pool.Run(context.Background()))

	assert.Equal(t, uint64(2), pool.Processed())
	assert.Equal(t, uint64(2), pool.Failed())
	assert.Equal(t, 2, logs.FilterMessage("handle message failed").Len())
}

func TestPool_StopsOnContext(t *testing.T) {
	q := mq.New[int]()
	pool := NewPool[int](q, func(context.Context, int) error { return nil }, Config{Workers: 3})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()

	require.Eventually(t, func() bool {
		return q.Stats().WaitingConsumers == 3
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("pool ignored cancellation")
	}
	assert.Equal(t, mq.StateOpen, q.State())
	assert.Equal(t, 0, q.Stats().WaitingConsumers)
}

func TestPool_StopsOnCancelWithBacklog(t *testing.T) {
	q := mq.New[int]()
	const backlog = 1000
	for i := 0; i < backlog; i++ {
		require.NoError(t, q.TryEnqueue(i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var handled int
	pool := NewPool[int](q, func(context.Context, int) error {
		handled++
		cancel()
		return nil
	}, Config{Workers: 1})

	err := pool.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, handled, "no message is taken after cancel")
	assert.Equal(t, backlog-1, q.Size())
	assert.Equal(t, mq.StateOpen, q.State())
}

func TestPool_StopsWhenIdle(t *testing.T) {
	q := mq.New[int]()
	require.NoError(t, q.TryEnqueue(1))

	pool := NewPool[int](q, func(context.Context, int) error { return nil },
		Config{Workers: 2, IdleTimeout: 20 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- pool.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("idle workers did not stop")
	}
	assert.Equal(t, uint64(1), pool.Processed())
	assert.False(t, q.IsClosed())
	assert.Equal(t, 0, q.Stats().WaitingConsumers)
}

func TestPool_DeadlineIsNotIdle(t *testing.T) {
	q := mq.New[int]()
	pool := NewPool[int](q, func(context.Context, int) error { return nil },
		Config{IdleTimeout: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Run(ctx)
	assert.ErrorIs(t, err, mq.ErrTimeout)
}

func TestConfigFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		in       settings.MessageQueue
		wantWork int
		wantIdle time.Duration
	}{
		{name: "configured", in: settings.MessageQueue{Workers: 4, DequeueTimeout: 250}, wantWork: 4, wantIdle: 250 * time.Millisecond},
		{name: "wait forever", in: settings.MessageQueue{Workers: 2}, wantWork: 2, wantIdle: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := zap.NewNop()
			cfg := ConfigFromSettings(tt.in, log)
			assert.Equal(t, tt.wantWork, cfg.Workers)
			assert.Equal(t, tt.wantIdle, cfg.IdleTimeout)
			assert.Same(t, log, cfg.Logger)

			pool := NewPool[int](mq.New[int](), func(context.Context, int) error { return nil }, cfg)
			assert.Equal(t, tt.wantWork, pool.workers)
			assert.Equal(t, tt.wantIdle, pool.idle)
		})
	}
}

func TestNewPool_DefaultWorkers(t *testing.T) {
	pool := NewPool[int](mq.New[int](), func(context.Context, int) error { return nil }, Config{})
	assert.Equal(t, 1, pool.workers)
}
