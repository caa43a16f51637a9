package queue

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func withRedis(t *testing.T, fn func(t *testing.T, client *redis.Client)) {
	// check address
	addr := os.Getenv("CLAMP_REDIS_ADDR")
	if addr == "" {
		t.Skip("set CLAMP_REDIS_ADDR to run redis tests")
	}

	// create client
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	defer client.Close()

	fn(t, client)
}

func TestRedis(t *testing.T) {
	withRedis(t, func(t *testing.T, client *redis.Client) {
		key := fmt.Sprintf("clamp-test-%d", time.Now().UnixNano())
		defer client.Del(context.Background(), key)

		q := NewRedis[string](client, key)

		job := New("email_job", "Hello!")
		err := q.Enqueue(context.Background(), job)
		assert.NoError(t, err)

		got, err := q.Dequeue(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
		assert.Equal(t, job.Name, got.Name)
		assert.Equal(t, job.Data, got.Data)
	})
}

func TestRedisOrder(t *testing.T) {
	withRedis(t, func(t *testing.T, client *redis.Client) {
		key := fmt.Sprintf("clamp-test-%d", time.Now().UnixNano())
		defer client.Del(context.Background(), key)

		q := NewRedis[string](client, key)

		for _, data := range []string{"a", "b", "c"} {
			err := q.Enqueue(context.Background(), New("email_job", data))
			assert.NoError(t, err)
		}

		for _, data := range []string{"a", "b", "c"} {
			job, err := q.Dequeue(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, data, job.Data)
		}
	})
}

func TestRedisCancel(t *testing.T) {
	withRedis(t, func(t *testing.T, client *redis.Client) {
		key := fmt.Sprintf("clamp-test-%d", time.Now().UnixNano())

		q := NewRedis[string](client, key)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		job, err := q.Dequeue(ctx)
		assert.Error(t, err)
		assert.Nil(t, job)
	})
}

func TestRedisInvalid(t *testing.T) {
	assert.PanicsWithValue(t, "queue: missing key", func() {
		NewRedis[string](nil, "")
	})
}
