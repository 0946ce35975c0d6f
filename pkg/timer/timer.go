package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Timer is the clock the message queue uses to stamp pending messages.
type Timer interface {
	Now() time.Time
	Stop()
}

// SystemTimer reads the wall clock on every call.
type SystemTimer struct{}

// System returns a Timer backed by time.Now.
func System() Timer { return SystemTimer{} }

func (SystemTimer) Now() time.Time { return time.Now() }

func (SystemTimer) Stop() {}

// CachedTimer refreshes a cached time.Time every step.
// Now is a single atomic load, which suits hot enqueue paths that only
// need coarse timestamps for age diagnostics.
type CachedTimer struct {
	now    atomic.Pointer[time.Time]
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewCachedTimer(step time.Duration) *CachedTimer {
	if step <= 0 {
		step = time.Millisecond
	}
	t := &CachedTimer{
		ticker: time.NewTicker(step),
		done:   make(chan struct{}),
	}
	t.store(time.Now())

	t.wg.Add(1)
	go t.run()

	return t
}

func (t *CachedTimer) run() {
	defer t.wg.Done()

	for {
		select {
		case now := <-t.ticker.C:
			t.store(now)
		case <-t.done:
			t.ticker.Stop()
			return
		}
	}
}

func (t *CachedTimer) store(now time.Time) {
	t.now.Store(&now)
}

func (t *CachedTimer) Now() time.Time {
	return *t.now.Load()
}

// Stop halts the refresh goroutine. Safe to call more than once.
func (t *CachedTimer) Stop() {
	t.once.Do(func() {
		close(t.done)
		t.wg.Wait()
	})
}
