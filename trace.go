package clamp

import (
	"context"
	"sync"

	"github.com/256dpi/xo"
)

// Trace returns a layer that wraps every call in a tracing span with the
// specified name. The span covers the full duration of the call and is
// ended once the resolved future has been observed.
func Trace[D, R any](name string) Layer[D, R] {
	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		return &traceService[D, R]{
			next: next,
			name: name,
		}
	})
}

type traceService[D, R any] struct {
	next Service[D, R]
	name string
}

// Ready implements the Service interface by delegating to the wrapped
// service.
func (s *traceService[D, R]) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

// Call implements the Service interface.
func (s *traceService[D, R]) Call(ctx context.Context, req *Request[D]) Future[R] {
	// trace call
	ctx, span := xo.Trace(ctx, s.name)

	// delegate call
	inner := s.next.Call(ctx, req)

	return &traceFuture[R]{
		inner: inner,
		span:  span,
	}
}

type traceFuture[R any] struct {
	inner Future[R]
	span  xo.Span
	once  sync.Once
}

// Done implements the Future interface by delegating to the inner future.
func (f *traceFuture[R]) Done() <-chan struct{} {
	return f.inner.Done()
}

// Result implements the Future interface. The span is ended at the first
// observation of the resolved inner future.
func (f *traceFuture[R]) Result() (R, error) {
	// get result
	value, err := f.inner.Result()

	// end span once
	f.once.Do(func() {
		f.span.End()
	})

	return value, err
}
