package queue

import (
	"context"

	"github.com/256dpi/xo"
)

// Memory is a bounded in-memory queue mainly used for testing and single
// process deployments. It is safe for concurrent use.
type Memory[D any] struct {
	jobs chan *Job[D]
}

// NewMemory creates and returns a new in-memory queue with the specified
// capacity.
func NewMemory[D any](capacity int) *Memory[D] {
	// check capacity
	if capacity <= 0 {
		panic("queue: missing capacity")
	}

	return &Memory[D]{
		jobs: make(chan *Job[D], capacity),
	}
}

// Enqueue implements the Queue interface. It returns ErrFull if the queue is
// at capacity.
func (m *Memory[D]) Enqueue(ctx context.Context, job *Job[D]) error {
	// check context
	if ctx.Err() != nil {
		return xo.W(ctx.Err())
	}

	// attempt enqueue
	select {
	case m.jobs <- job:
		return nil
	default:
		return ErrFull.Wrap()
	}
}

// Dequeue implements the Queue interface.
func (m *Memory[D]) Dequeue(ctx context.Context) (*Job[D], error) {
	select {
	case job := <-m.jobs:
		return job, nil
	case <-ctx.Done():
		return nil, xo.W(ctx.Err())
	}
}
