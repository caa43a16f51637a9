package clamp

import (
	"context"
	"sync"

	"github.com/256dpi/xo"
)

// Future represents the single result of an asynchronous call. A future
// resolves exactly once and must not be observed again after its result has
// been consumed.
type Future[R any] interface {
	// Done returns a channel that is closed once the future has resolved.
	Done() <-chan struct{}

	// Result returns the resolved value and error. It must only be called
	// after the channel returned by Done has been closed.
	Result() (R, error)
}

// Promise is the producer side of a future. A promise may be settled exactly
// once using Resolve or Reject and implements the Future interface for the
// consumer side.
type Promise[R any] struct {
	done  chan struct{}
	once  sync.Once
	value R
	err   error
}

// NewPromise creates and returns a new promise.
func NewPromise[R any]() *Promise[R] {
	return &Promise[R]{
		done: make(chan struct{}),
	}
}

// Resolve will settle the promise with the provided value. It will panic if
// the promise has already been settled.
func (p *Promise[R]) Resolve(value R) {
	// settle promise
	if !p.settle(value, nil) {
		panic("clamp: promise already settled")
	}
}

// Reject will settle the promise with the provided error. It will panic if
// the promise has already been settled.
func (p *Promise[R]) Reject(err error) {
	// check error
	if err == nil {
		panic("clamp: missing error")
	}

	// settle promise
	var zero R
	if !p.settle(zero, err) {
		panic("clamp: promise already settled")
	}
}

// settle will attempt to settle the promise and return whether it succeeded.
func (p *Promise[R]) settle(value R, err error) bool {
	var settled bool
	p.once.Do(func() {
		p.value = value
		p.err = err
		settled = true
		close(p.done)
	})

	return settled
}

// Done implements the Future interface.
func (p *Promise[R]) Done() <-chan struct{} {
	return p.done
}

// Result implements the Future interface.
func (p *Promise[R]) Result() (R, error) {
	// check resolution
	select {
	case <-p.done:
	default:
		panic("clamp: unresolved future")
	}

	return p.value, p.err
}

// Resolved returns a future that has already resolved with the provided
// value.
func Resolved[R any](value R) Future[R] {
	promise := NewPromise[R]()
	promise.Resolve(value)
	return promise
}

// Rejected returns a future that has already resolved with the provided
// error.
func Rejected[R any](err error) Future[R] {
	promise := NewPromise[R]()
	promise.Reject(err)
	return promise
}

// Await will block until the provided future resolves and return its result.
// If the provided context is cancelled first, the context error is returned
// and the result of the future is left unconsumed.
func Await[R any](ctx context.Context, future Future[R]) (R, error) {
	select {
	case <-future.Done():
		return future.Result()
	case <-ctx.Done():
		var zero R
		return zero, xo.W(ctx.Err())
	}
}
