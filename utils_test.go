package clamp

import (
	"context"
	"time"
)

type testService struct {
	ready    error
	requests []*Request[string]
	fn       func(ctx context.Context, req *Request[string]) Future[string]
}

func (s *testService) Ready(_ context.Context) error {
	return s.ready
}

func (s *testService) Call(ctx context.Context, req *Request[string]) Future[string] {
	// record request
	s.requests = append(s.requests, req)

	// run function if available
	if s.fn != nil {
		return s.fn(ctx, req)
	}

	return Resolved(req.Data)
}

func delayedService(delay time.Duration, err error) Service[string, string] {
	return ServiceFunc[string, string](func(ctx context.Context, req *Request[string]) Future[string] {
		promise := NewPromise[string]()
		go func() {
			select {
			case <-time.After(delay):
				if err != nil {
					promise.Reject(err)
				} else {
					promise.Resolve(req.Data)
				}
			case <-ctx.Done():
			}
		}()
		return promise
	})
}
