package mq

import (
	"container/list"
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/huynhanx03/go-mq/pkg/datastructs/queue"
	"github.com/huynhanx03/go-mq/pkg/settings"
	"github.com/huynhanx03/go-mq/pkg/timer"
)

var (
	_ Sender[int]   = (*MessageQueue[int])(nil)
	_ Receiver[int] = (*MessageQueue[int])(nil)
	_ Stater        = (*MessageQueue[int])(nil)
)

// entry is a pending message and the time it was accepted.
type entry[T any] struct {
	msg T
	at  time.Time
}

// waiter is a parked caller. Producers park with msg set; consumers park
// with msg empty and receive it on resolve. A waiter is resolved exactly
// once, under the queue lock, and removed from its list at the same time.
type waiter[T any] struct {
	msg   T
	err   error
	elem  *list.Element
	ready chan struct{}
}

func newWaiter[T any](msg T) *waiter[T] {
	return &waiter[T]{msg: msg, ready: make(chan struct{})}
}

func (w *waiter[T]) resolve(err error) {
	w.err = err
	w.elem = nil
	close(w.ready)
}

// MessageQueue is a thread-safe FIFO hand-off point between producers and
// consumers. The zero value is not usable; create queues with New.
type MessageQueue[T any] struct {
	mu       sync.Mutex
	pending  *queue.Ring[entry[T]]
	closed   bool
	capacity int

	// Invariant: consumers is non-empty only while pending is empty, and
	// producers is non-empty only while pending is full.
	consumers list.List
	producers list.List

	name     string
	id       string
	clock    timer.Timer
	ownClock bool // stopped once the queue is closed and empty

	enqueued       uint64
	dequeued       uint64
	rejectedFull   uint64
	rejectedClosed uint64
	timeouts       uint64
}

// New creates an empty, open queue.
func New[T any](opts ...Option) *MessageQueue[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.finish()

	return &MessageQueue[T]{
		pending:  queue.NewRing[entry[T]](o.capacity),
		capacity: o.capacity,
		name:     o.name,
		id:       o.id,
		clock:    o.clock,
		ownClock: o.ownClock,
	}
}

// NewFromConfig creates a queue from its settings block.
func NewFromConfig[T any](cfg settings.MessageQueue, opts ...Option) *MessageQueue[T] {
	return New[T](append(FromSettings(cfg), opts...)...)
}

// Name returns the diagnostic name.
func (q *MessageQueue[T]) Name() string { return q.name }

// ID returns the diagnostic id.
func (q *MessageQueue[T]) ID() string { return q.id }

// Capacity returns the bound, or 0 for an unbounded queue.
func (q *MessageQueue[T]) Capacity() int { return q.capacity }

// Enqueue appends msg to the tail, parking while a bounded queue is full.
//
// It fails with ErrQueueClosed if the queue is or becomes closed before msg
// is accepted, and with ErrTimeout if ctx's deadline passes first. Any
// failure leaves the queue unchanged.
func (q *MessageQueue[T]) Enqueue(ctx context.Context, msg T) error {
	if isNil(msg) {
		return ErrNilMessage
	}

	q.mu.Lock()
	if err := q.offerLocked(msg); err != ErrQueueFull {
		q.mu.Unlock()
		return err
	}
	if ctx.Err() != nil {
		err := q.abandonLocked(ctx)
		q.mu.Unlock()
		return err
	}

	w := newWaiter(msg)
	w.elem = q.producers.PushBack(w)
	q.mu.Unlock()

	select {
	case <-w.ready:
		return w.err
	case <-ctx.Done():
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if w.elem == nil {
		// Resolved concurrently with the deadline; the outcome stands.
		return w.err
	}
	q.producers.Remove(w.elem)
	w.elem = nil
	return q.abandonLocked(ctx)
}

// TryEnqueue appends msg without blocking. It fails with ErrQueueFull when a
// bounded queue is at capacity and ErrQueueClosed after Close.
func (q *MessageQueue[T]) TryEnqueue(msg T) error {
	if isNil(msg) {
		return ErrNilMessage
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.offerLocked(msg)
	if err == ErrQueueFull {
		q.rejectedFull++
	}
	return err
}

// EnqueueTimeout is Enqueue bounded by d. A non-positive d waits without a deadline.
func (q *MessageQueue[T]) EnqueueTimeout(msg T, d time.Duration) error {
	ctx, cancel := timeoutContext(d)
	defer cancel()
	return q.Enqueue(ctx, msg)
}

// Dequeue removes and returns the oldest message, parking while the queue is
// empty and open. It fails with ErrQueueClosedAndEmpty once the queue is
// closed and drained, and with ErrTimeout if ctx's deadline passes first.
func (q *MessageQueue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	if msg, ok := q.takeLocked(); ok {
		q.mu.Unlock()
		return msg, nil
	}
	if q.closed {
		q.mu.Unlock()
		return zero, ErrQueueClosedAndEmpty
	}
	if ctx.Err() != nil {
		err := q.abandonLocked(ctx)
		q.mu.Unlock()
		return zero, err
	}

	w := newWaiter(zero)
	w.elem = q.consumers.PushBack(w)
	q.mu.Unlock()

	select {
	case <-w.ready:
		return w.msg, w.err
	case <-ctx.Done():
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if w.elem == nil {
		// A message was handed over (or Close ran) as the deadline fired.
		// The message has already left the queue, so it must be returned.
		return w.msg, w.err
	}
	q.consumers.Remove(w.elem)
	w.elem = nil
	return zero, q.abandonLocked(ctx)
}

// TryDequeue removes and returns the oldest message without blocking.
// An empty queue yields ErrQueueEmpty while open and ErrQueueClosedAndEmpty
// once closed.
func (q *MessageQueue[T]) TryDequeue() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if msg, ok := q.takeLocked(); ok {
		return msg, nil
	}

	var zero T
	if q.closed {
		return zero, ErrQueueClosedAndEmpty
	}
	return zero, ErrQueueEmpty
}

// DequeueTimeout is Dequeue bounded by d. A non-positive d waits without a deadline.
func (q *MessageQueue[T]) DequeueTimeout(d time.Duration) (T, error) {
	ctx, cancel := timeoutContext(d)
	defer cancel()
	return q.Dequeue(ctx)
}

// DequeueBatch waits like Dequeue for the first message, then takes up to
// limit-1 further messages that are already pending. The batch is in FIFO order.
func (q *MessageQueue[T]) DequeueBatch(ctx context.Context, limit int) ([]T, error) {
	if limit < 1 {
		limit = 1
	}

	first, err := q.Dequeue(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]T, 1, limit)
	batch[0] = first

	q.mu.Lock()
	defer q.mu.Unlock()
	for len(batch) < limit {
		msg, ok := q.takeLocked()
		if !ok {
			break
		}
		batch = append(batch, msg)
	}
	return batch, nil
}

// Drain removes and returns every pending message without blocking.
func (q *MessageQueue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]T, 0, q.pending.Len())
	for {
		msg, ok := q.takeLocked()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

// Close stops the queue from accepting messages. Parked producers fail with
// ErrQueueClosed; parked consumers fail with ErrQueueClosedAndEmpty (they can
// only be parked while nothing is pending). Calling Close again is a no-op.
// An owned clock keeps running until the last pending message is taken.
func (q *MessageQueue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	for e := q.consumers.Front(); e != nil; e = q.consumers.Front() {
		q.consumers.Remove(e).(*waiter[T]).resolve(ErrQueueClosedAndEmpty)
	}
	for e := q.producers.Front(); e != nil; e = q.producers.Front() {
		q.rejectedClosed++
		q.producers.Remove(e).(*waiter[T]).resolve(ErrQueueClosed)
	}

	q.releaseClockLocked()
}

// Size returns the number of pending messages. The value is advisory: it may
// be stale by the time the caller acts on it.
func (q *MessageQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}

// IsClosed reports whether Close has been called.
func (q *MessageQueue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// State returns the lifecycle state.
func (q *MessageQueue[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *MessageQueue[T]) stateLocked() State {
	switch {
	case !q.closed:
		return StateOpen
	case q.pending.Len() > 0:
		return StateDraining
	default:
		return StateClosed
	}
}

// offerLocked accepts msg without parking: straight to the longest-waiting
// consumer if any, else onto the tail. Returns ErrQueueFull if neither works.
func (q *MessageQueue[T]) offerLocked(msg T) error {
	if q.closed {
		q.rejectedClosed++
		return ErrQueueClosed
	}

	if e := q.consumers.Front(); e != nil {
		w := q.consumers.Remove(e).(*waiter[T])
		w.msg = msg
		w.resolve(nil)
		q.enqueued++
		q.dequeued++
		return nil
	}

	if !q.pending.Enqueue(entry[T]{msg: msg, at: q.clock.Now()}) {
		return ErrQueueFull
	}
	q.enqueued++
	return nil
}

// takeLocked pops the head and, if that freed a slot, admits the
// longest-waiting producer.
func (q *MessageQueue[T]) takeLocked() (T, bool) {
	e, ok := q.pending.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}
	q.dequeued++

	if front := q.producers.Front(); front != nil {
		w := q.producers.Remove(front).(*waiter[T])
		q.pending.Enqueue(entry[T]{msg: w.msg, at: q.clock.Now()})
		q.enqueued++
		w.resolve(nil)
	}
	q.releaseClockLocked()
	return e.msg, true
}

// releaseClockLocked stops an owned clock once the queue is closed and
// empty. Until then OldestAge still needs a running clock.
func (q *MessageQueue[T]) releaseClockLocked() {
	if !q.ownClock || !q.closed || q.pending.Len() > 0 {
		return
	}
	q.clock.Stop()
	q.ownClock = false
}

// abandonLocked records a caller giving up on ctx and returns its error.
func (q *MessageQueue[T]) abandonLocked(ctx context.Context) error {
	err := waitErr(ctx)
	if err == ErrTimeout {
		q.timeouts++
	}
	return err
}

func timeoutContext(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}

// isNil reports whether v is a nil interface or a nil reference value.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
