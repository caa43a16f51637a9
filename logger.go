package clamp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultLogger returns a layer that logs completed calls to standard error.
func DefaultLogger[D, R any](name string) Layer[D, R] {
	return NewLogger[D, R](os.Stderr, name)
}

// NewLogger returns a layer that writes a single line per completed call to
// the provided writer. The line includes the specified name, the outcome and
// the duration of the call. Calls whose futures are dropped before
// resolution are not logged.
func NewLogger[D, R any](out io.Writer, name string) Layer[D, R] {
	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		return &logService[D, R]{
			next: next,
			out:  out,
			name: name,
		}
	})
}

type logService[D, R any] struct {
	next Service[D, R]
	out  io.Writer
	name string
}

// Ready implements the Service interface by delegating to the wrapped
// service.
func (s *logService[D, R]) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

// Call implements the Service interface.
func (s *logService[D, R]) Call(ctx context.Context, req *Request[D]) Future[R] {
	// save start
	start := time.Now()

	// delegate call
	inner := s.next.Call(ctx, req)

	return &logFuture[R]{
		inner: inner,
		out:   s.out,
		name:  s.name,
		start: start,
	}
}

type logFuture[R any] struct {
	inner Future[R]
	out   io.Writer
	name  string
	start time.Time
	once  sync.Once
}

// Done implements the Future interface by delegating to the inner future.
func (f *logFuture[R]) Done() <-chan struct{} {
	return f.inner.Done()
}

// Result implements the Future interface. The line is written at the first
// observation of the resolved inner future.
func (f *logFuture[R]) Result() (R, error) {
	// get result
	value, err := f.inner.Result()

	// log call once
	f.once.Do(func() {
		// get outcome
		outcome := "ok"
		if err != nil {
			outcome = err.Error()
		}

		// write line
		_, _ = fmt.Fprintf(f.out, "[%s] (%s) - %s\n", f.name, outcome, time.Since(f.start).String())
	})

	return value, err
}
