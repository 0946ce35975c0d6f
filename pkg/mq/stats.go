package mq

import "time"

// Stats is a point-in-time snapshot of a queue's diagnostic counters.
type Stats struct {
	Name             string        `json:"name"`
	ID               string        `json:"id"`
	State            State         `json:"state"`
	Size             int           `json:"size"`
	Capacity         int           `json:"capacity"`
	Enqueued         uint64        `json:"enqueued"`
	Dequeued         uint64        `json:"dequeued"`
	RejectedFull     uint64        `json:"rejected_full"`
	RejectedClosed   uint64        `json:"rejected_closed"`
	Timeouts         uint64        `json:"timeouts"`
	WaitingProducers int           `json:"waiting_producers"`
	WaitingConsumers int           `json:"waiting_consumers"`
	OldestAge        time.Duration `json:"oldest_age_ns"`
}

// Stats returns a consistent snapshot of the queue's counters.
func (q *MessageQueue[T]) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := Stats{
		Name:             q.name,
		ID:               q.id,
		State:            q.stateLocked(),
		Size:             q.pending.Len(),
		Capacity:         q.capacity,
		Enqueued:         q.enqueued,
		Dequeued:         q.dequeued,
		RejectedFull:     q.rejectedFull,
		RejectedClosed:   q.rejectedClosed,
		Timeouts:         q.timeouts,
		WaitingProducers: q.producers.Len(),
		WaitingConsumers: q.consumers.Len(),
	}
	if head, ok := q.pending.Peek(); ok {
		if age := q.clock.Now().Sub(head.at); age > 0 {
			s.OldestAge = age
		}
	}
	return s
}
