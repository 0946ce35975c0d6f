package queue

import (
	"github.com/huynhanx03/go-mq/pkg/utils"
)

var _ Queue[int] = (*Ring[int])(nil)

const (
	minRingSize = 8
	// shrinkRatio: the backing array halves once usage drops below 1/shrinkRatio.
	shrinkRatio = 4
)

// Ring is a growable FIFO backed by a power-of-two circular slice.
// It is NOT thread-safe; callers serialise access themselves.
//
// A Ring created with a positive limit rejects Enqueue once it holds limit
// items. A zero limit makes it unbounded.
type Ring[T any] struct {
	buf   []T
	mask  int
	head  int // index of the oldest item
	count int
	limit int
}

// NewRing creates a ring. limit <= 0 means unbounded.
func NewRing[T any](limit int) *Ring[T] {
	if limit < 0 {
		limit = 0
	}
	size := minRingSize
	if limit > 0 && limit < size {
		size = utils.CeilToPowerOfTwo(limit)
	}
	return &Ring[T]{
		buf:   make([]T, size),
		mask:  size - 1,
		limit: limit,
	}
}

// Enqueue appends item at the tail. Returns false if the ring is at its limit.
func (r *Ring[T]) Enqueue(item T) bool {
	if r.limit > 0 && r.count >= r.limit {
		return false
	}
	if r.count == len(r.buf) {
		r.resize(len(r.buf) << 1)
	}
	r.buf[(r.head+r.count)&r.mask] = item
	r.count++
	return true
}

// Dequeue removes and returns the oldest item.
func (r *Ring[T]) Dequeue() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}

	item := r.buf[r.head]
	r.buf[r.head] = zero // release reference for GC
	r.head = (r.head + 1) & r.mask
	r.count--

	if len(r.buf) > minRingSize && r.count < len(r.buf)/shrinkRatio {
		r.resize(len(r.buf) >> 1)
	}
	return item, true
}

// Peek returns the oldest item without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.buf[r.head], true
}

// Len returns the number of items held.
func (r *Ring[T]) Len() int { return r.count }

// IsEmpty reports whether the ring holds no items.
func (r *Ring[T]) IsEmpty() bool { return r.count == 0 }

// IsFull reports whether a bounded ring is at its limit. Unbounded rings are never full.
func (r *Ring[T]) IsFull() bool { return r.limit > 0 && r.count >= r.limit }

// Capacity returns the configured limit (0 for unbounded).
func (r *Ring[T]) Capacity() int { return r.limit }

// Bounded reports whether the ring has a limit.
func (r *Ring[T]) Bounded() bool { return r.limit > 0 }

// Clear removes all items and returns them in FIFO order.
func (r *Ring[T]) Clear() []T {
	if r.count == 0 {
		return nil
	}
	out := make([]T, 0, r.count)
	for {
		item, ok := r.Dequeue()
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}

// resize copies the live window into a fresh slice of the given power-of-two size.
func (r *Ring[T]) resize(size int) {
	if size < minRingSize {
		size = minRingSize
	}
	buf := make([]T, size)
	for i := 0; i < r.count; i++ {
		buf[i] = r.buf[(r.head+i)&r.mask]
	}
	r.buf = buf
	r.mask = size - 1
	r.head = 0
}
