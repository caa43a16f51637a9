// Package metrics provides a layer that instruments services with
// prometheus metrics.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/256dpi/clamp"
)

// Metrics bundles the collectors used to instrument services. The same
// bundle may back any number of layers that are distinguished by their job
// name label.
type Metrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

var defaultMetrics *Metrics
var defaultMetricsOnce sync.Once

// Default returns the metrics bundle registered with the default prometheus
// registry. The bundle is created once and shared for the lifetime of the
// process.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})

	return defaultMetrics
}

// New creates and returns a new metrics bundle registered with the provided
// registerer. It will panic if the collectors have already been registered.
func New(registerer prometheus.Registerer) *Metrics {
	// prepare metrics
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of completed job requests.",
		}, []string{"job_name"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Time taken to complete job requests.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}, []string{"job_name"}),
	}

	// register collectors
	registerer.MustRegister(m.calls, m.latency)

	return m
}

// NewLayer returns a layer that counts completed calls and records their
// latency under the specified job name. The labelled counter and histogram
// handles are obtained eagerly at construction. If the provided bundle is
// nil the default bundle is used. Both successful and failed calls are
// recorded identically; calls whose futures are dropped before resolution
// are not recorded at all. The layer introduces no additional backpressure.
func NewLayer[D, R any](m *Metrics, jobName string) clamp.Layer[D, R] {
	// ensure bundle
	if m == nil {
		m = Default()
	}

	// obtain handles
	calls := m.calls.WithLabelValues(jobName)
	latency := m.latency.WithLabelValues(jobName)

	return clamp.LayerFunc[D, R](func(next clamp.Service[D, R]) clamp.Service[D, R] {
		return &service[D, R]{
			next:    next,
			calls:   calls,
			latency: latency,
		}
	})
}

type service[D, R any] struct {
	next    clamp.Service[D, R]
	calls   prometheus.Counter
	latency prometheus.Observer
}

// Ready implements the clamp.Service interface by delegating to the wrapped
// service.
func (s *service[D, R]) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

// Call implements the clamp.Service interface. The call is delegated
// unchanged and the returned future observes the inner future together with
// the captured start timestamp.
func (s *service[D, R]) Call(ctx context.Context, req *clamp.Request[D]) clamp.Future[R] {
	// save start
	start := time.Now()

	// delegate call
	inner := s.next.Call(ctx, req)

	return &responseFuture[R]{
		inner:   inner,
		start:   start,
		calls:   s.calls,
		latency: s.latency,
	}
}

// responseFuture wraps an in-flight inner future and performs the metric
// updates exactly once when the resolved inner future is first observed.
type responseFuture[R any] struct {
	inner   clamp.Future[R]
	start   time.Time
	calls   prometheus.Counter
	latency prometheus.Observer
	once    sync.Once
}

// Done implements the clamp.Future interface by delegating to the inner
// future.
func (f *responseFuture[R]) Done() <-chan struct{} {
	return f.inner.Done()
}

// Result implements the clamp.Future interface. Success and error results
// are recorded identically.
func (f *responseFuture[R]) Result() (R, error) {
	// get result
	value, err := f.inner.Result()

	// record metrics once
	f.once.Do(func() {
		f.calls.Inc()
		f.latency.Observe(time.Since(f.start).Seconds())
	})

	return value, err
}
