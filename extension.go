package clamp

import (
	"context"
)

// Extend returns a layer that injects the provided value into the extensions
// of every passing request before delegating the call. A previously stored
// value of the same type is overwritten. The value is shared across all
// requests processed by the decorated service and must therefore be safe for
// concurrent use. The layer introduces no additional backpressure and leaves
// the returned future untouched.
func Extend[D, R, V any](value V) Layer[D, R] {
	return ExtendFunc[D, R](func() V {
		return value
	})
}

// ExtendFunc returns a layer that injects the value produced by the provided
// function into the extensions of every passing request before delegating
// the call. The function is invoked once per request and must be safe for
// concurrent use.
func ExtendFunc[D, R, V any](fn func() V) Layer[D, R] {
	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		return &extensionService[D, R, V]{
			next: next,
			fn:   fn,
		}
	})
}

type extensionService[D, R, V any] struct {
	next Service[D, R]
	fn   func() V
}

// Ready implements the Service interface by delegating to the wrapped
// service.
func (s *extensionService[D, R, V]) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

// Call implements the Service interface. The extension is inserted
// synchronously before the call is delegated.
func (s *extensionService[D, R, V]) Call(ctx context.Context, req *Request[D]) Future[R] {
	// inject value
	Insert(req.Extensions(), s.fn())

	return s.next.Call(ctx, req)
}
