// Package mq provides MessageQueue, an in-process FIFO that hands messages
// from producers to consumers inside a concurrent runtime.
//
// A queue is either unbounded or bounded by a fixed capacity. Producers use
// Enqueue (blocks while a bounded queue is full) or TryEnqueue (fails with
// ErrQueueFull). Consumers use Dequeue (blocks while the queue is empty and
// open) or TryDequeue. Blocking calls take a context; a context deadline
// surfaces as ErrTimeout and leaves the queue untouched.
//
// # Lifecycle
//
//	Open --Close--> Draining --(last message taken)--> Closed
//
// Close is idempotent. Once closed, every enqueue fails with ErrQueueClosed
// and parked producers are released with the same error. Messages already
// queued stay receivable; when none are left, Dequeue and TryDequeue fail
// with ErrQueueClosedAndEmpty.
//
// # Empty versus closed
//
// TryDequeue tells the two terminal-looking cases apart: ErrQueueEmpty means
// the queue is open and may receive more messages later, while
// ErrQueueClosedAndEmpty means it never will. Consumers should stop polling
// on the latter.
//
// # Fairness
//
// Parked callers are served in arrival order. A message enqueued while
// consumers are parked is handed directly to the longest-waiting consumer, and
// a slot freed in a full queue is filled from the longest-waiting producer,
// so neither side can be overtaken by a late arrival.
//
// Basic usage:
//
//	q := mq.New[string](mq.WithCapacity(2), mq.WithName("mailbox"))
//	_ = q.TryEnqueue("a")
//	msg, err := q.DequeueTimeout(time.Second)
//	q.Close()
package mq
