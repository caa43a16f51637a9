package clamp

import (
	"context"
	"time"

	"github.com/256dpi/xo"
)

// ErrTimeout is returned by futures of calls that did not resolve in time.
var ErrTimeout = xo.BF("timeout")

// Timeout returns a layer that rejects the returned future with ErrTimeout
// if the inner future does not resolve within the specified duration. The
// inner call itself is not cancelled and its eventual result is discarded.
// Each call spawns a goroutine that lives until the inner future resolves,
// therefore an inner service that never resolves its futures will leak one
// goroutine per call. The layer introduces no additional backpressure.
func Timeout[D, R any](timeout time.Duration) Layer[D, R] {
	// check timeout
	if timeout <= 0 {
		panic("clamp: missing timeout")
	}

	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		return &timeoutService[D, R]{
			next:    next,
			timeout: timeout,
		}
	})
}

type timeoutService[D, R any] struct {
	next    Service[D, R]
	timeout time.Duration
}

// Ready implements the Service interface by delegating to the wrapped
// service.
func (s *timeoutService[D, R]) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

// Call implements the Service interface.
func (s *timeoutService[D, R]) Call(ctx context.Context, req *Request[D]) Future[R] {
	// delegate call
	inner := s.next.Call(ctx, req)

	// prepare promise
	promise := NewPromise[R]()

	// reject promise once the timeout has been reached
	timer := time.AfterFunc(s.timeout, func() {
		var zero R
		promise.settle(zero, ErrTimeout.Wrap())
	})

	// forward the inner result if it comes in first
	go func() {
		<-inner.Done()
		timer.Stop()
		value, err := inner.Result()
		promise.settle(value, err)
	}()

	return promise
}
