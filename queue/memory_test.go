package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	job := New("email_job", "Hello!")
	assert.NotZero(t, job.ID)
	assert.Equal(t, "email_job", job.Name)
	assert.Equal(t, "Hello!", job.Data)
	assert.NotZero(t, job.Created)
}

func TestMemory(t *testing.T) {
	q := NewMemory[string](2)

	job := New("email_job", "Hello!")
	err := q.Enqueue(context.Background(), job)
	assert.NoError(t, err)

	got, err := q.Dequeue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestMemoryOrder(t *testing.T) {
	q := NewMemory[string](4)

	for _, data := range []string{"a", "b", "c"} {
		err := q.Enqueue(context.Background(), New("email_job", data))
		assert.NoError(t, err)
	}

	for _, data := range []string{"a", "b", "c"} {
		job, err := q.Dequeue(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, data, job.Data)
	}
}

func TestMemoryFull(t *testing.T) {
	q := NewMemory[string](1)

	err := q.Enqueue(context.Background(), New("email_job", "a"))
	assert.NoError(t, err)

	err = q.Enqueue(context.Background(), New("email_job", "b"))
	assert.Error(t, err)
	assert.True(t, ErrFull.Is(err))
}

func TestMemoryCancel(t *testing.T) {
	q := NewMemory[string](1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	job, err := q.Dequeue(ctx)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Nil(t, job)
}

func TestMemoryInvalid(t *testing.T) {
	assert.PanicsWithValue(t, "queue: missing capacity", func() {
		NewMemory[string](0)
	})
}
