// Package queue provides job queues that feed pipelines built from clamp
// services.
package queue

import (
	"context"
	"time"

	"github.com/256dpi/xo"
	"github.com/google/uuid"
)

// ErrFull is returned by bounded queues that cannot accept another job.
var ErrFull = xo.BF("queue full")

// Job is the envelope of a single queued unit of work.
type Job[D any] struct {
	// The unique id of the job.
	ID uuid.UUID `json:"id"`

	// The name of the job.
	Name string `json:"name"`

	// The data that has been supplied on creation.
	Data D `json:"data"`

	// The time when the job was created.
	Created time.Time `json:"created"`
}

// New creates and returns a new job using the specified name and data.
func New[D any](name string, data D) *Job[D] {
	return &Job[D]{
		ID:      uuid.New(),
		Name:    name,
		Data:    data,
		Created: time.Now(),
	}
}

// Queue manages the queueing of jobs.
type Queue[D any] interface {
	// Enqueue will enqueue the provided job.
	Enqueue(ctx context.Context, job *Job[D]) error

	// Dequeue will dequeue the next job. It blocks until a job is available
	// or the provided context is cancelled.
	Dequeue(ctx context.Context) (*Job[D], error)
}
