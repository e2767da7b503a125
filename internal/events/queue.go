package events

import (
	"context"
)

const DefaultQueueCapacity = 100

// Queue is a bounded FIFO buffer of pending events. It decouples firing from
// any diagnostic consumer and applies backpressure: Put suspends the caller
// while the queue is full. It is constructed by the composition root and
// injected, never a package-level singleton.
type Queue struct {
	ch chan *WellnessEvent
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan *WellnessEvent, capacity)}
}

// Put blocks until space frees or ctx is done.
func (q *Queue) Put(ctx context.Context, ev *WellnessEvent) error {
	select {
	case q.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get blocks until an event arrives or ctx is done.
func (q *Queue) Get(ctx context.Context) (*WellnessEvent, error) {
	select {
	case ev := <-q.ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *Queue) Len() int {
	return len(q.ch)
}
