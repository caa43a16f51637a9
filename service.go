// Package clamp provides composable service layers for asynchronous job
// processing pipelines.
package clamp

import (
	"context"

	"github.com/256dpi/xo"
)

// ErrNotReady is returned by services that are currently unable to accept
// another call.
var ErrNotReady = xo.BF("not ready")

// Service is a unit of asynchronous work. A service must first be probed
// for readiness using Ready before a request may be submitted using Call.
// The returned future resolves exactly once with the result of the request.
type Service[D, R any] interface {
	// Ready will probe whether the service is able to accept another call.
	// A nil result indicates readiness, ErrNotReady indicates temporary
	// backpressure and any other error a service failure. The probe must
	// not block.
	Ready(ctx context.Context) error

	// Call will submit the provided request for processing and return a
	// future that resolves once with the result. Call must only be invoked
	// after a successful readiness probe. Ownership of the request is
	// transferred to the service.
	Call(ctx context.Context, req *Request[D]) Future[R]
}

// ServiceFunc adapts a plain function to a Service that is always ready.
type ServiceFunc[D, R any] func(ctx context.Context, req *Request[D]) Future[R]

// Ready implements the Service interface.
func (f ServiceFunc[D, R]) Ready(_ context.Context) error {
	return nil
}

// Call implements the Service interface.
func (f ServiceFunc[D, R]) Call(ctx context.Context, req *Request[D]) Future[R] {
	return f(ctx, req)
}

// Layer is a factory that wraps a service to produce a decorated service
// with the same contract.
type Layer[D, R any] interface {
	// Wrap will wrap the provided service and return the decorated service.
	Wrap(next Service[D, R]) Service[D, R]
}

// LayerFunc adapts a plain function to a Layer.
type LayerFunc[D, R any] func(next Service[D, R]) Service[D, R]

// Wrap implements the Layer interface.
func (f LayerFunc[D, R]) Wrap(next Service[D, R]) Service[D, R] {
	return f(next)
}

// Chain combines the provided layers into a single layer. The first layer
// becomes the outermost decorator: a request passes the layers in the given
// order before it reaches the wrapped service.
func Chain[D, R any](layers ...Layer[D, R]) Layer[D, R] {
	return LayerFunc[D, R](func(next Service[D, R]) Service[D, R] {
		// wrap from the inside out
		service := next
		for i := len(layers) - 1; i >= 0; i-- {
			service = layers[i].Wrap(service)
		}

		return service
	})
}
