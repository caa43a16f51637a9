package clamp

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle returns a layer that limits the rate of admitted calls using a
// token bucket with the specified rate and burst. In contrast to the other
// layers it deliberately adds backpressure: the readiness probe reports
// ErrNotReady while the bucket is empty. The wrapped service is probed first
// so that its own backpressure is surfaced unchanged.
func Throttle[D, R any](limit rate.Limit, burst int) Layer[D, R] {
	// create limiter
	limiter := rate.NewLimiter(limit, burst)

	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		return &throttleService[D, R]{
			next:    next,
			limiter: limiter,
		}
	})
}

type throttleService[D, R any] struct {
	next    Service[D, R]
	limiter *rate.Limiter
}

// Ready implements the Service interface.
func (s *throttleService[D, R]) Ready(ctx context.Context) error {
	// probe wrapped service
	err := s.next.Ready(ctx)
	if err != nil {
		return err
	}

	// check bucket
	if s.limiter.Tokens() < 1 {
		return ErrNotReady.Wrap()
	}

	return nil
}

// Call implements the Service interface. A token is consumed per call on a
// best effort basis.
func (s *throttleService[D, R]) Call(ctx context.Context, req *Request[D]) Future[R] {
	// consume token
	_ = s.limiter.Allow()

	return s.next.Call(ctx, req)
}
