package queue

import (
	"context"
	"encoding/json"

	"github.com/256dpi/xo"
	"github.com/redis/go-redis/v9"
)

// Redis is a queue backed by a redis list. Jobs are stored as JSON envelopes
// and distributed across all consumers of the same key.
type Redis[D any] struct {
	client *redis.Client
	key    string
}

// NewRedis creates and returns a new redis queue using the provided client
// and list key.
func NewRedis[D any](client *redis.Client, key string) *Redis[D] {
	// check key
	if key == "" {
		panic("queue: missing key")
	}

	return &Redis[D]{
		client: client,
		key:    key,
	}
}

// Enqueue implements the Queue interface.
func (r *Redis[D]) Enqueue(ctx context.Context, job *Job[D]) error {
	// encode job
	data, err := json.Marshal(job)
	if err != nil {
		return xo.W(err)
	}

	// push job
	err = r.client.LPush(ctx, r.key, data).Err()
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// Dequeue implements the Queue interface.
func (r *Redis[D]) Dequeue(ctx context.Context) (*Job[D], error) {
	// pop job
	res, err := r.client.BRPop(ctx, 0, r.key).Result()
	if err != nil {
		return nil, xo.W(err)
	}

	// decode job
	var job Job[D]
	err = json.Unmarshal([]byte(res[1]), &job)
	if err != nil {
		return nil, xo.W(err)
	}

	return &job, nil
}
