package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"

	"github.com/256dpi/clamp"
)

func delayedService(delay time.Duration, err error) clamp.Service[string, string] {
	return clamp.ServiceFunc[string, string](func(ctx context.Context, req *clamp.Request[string]) clamp.Future[string] {
		promise := clamp.NewPromise[string]()
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

func gather(t *testing.T, registry *prometheus.Registry, name, jobName string) *dto.Metric {
	// gather families
	families, err := registry.Gather()
	assert.NoError(t, err)

	// find metric
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "job_name" && label.GetValue() == jobName {
					return metric
				}
			}
		}
	}

	return nil
}

func counterValue(t *testing.T, registry *prometheus.Registry, jobName string) float64 {
	metric := gather(t, registry, "requests_total", jobName)
	if metric == nil {
		return 0
	}

	return metric.GetCounter().GetValue()
}

func histogramSamples(t *testing.T, registry *prometheus.Registry, jobName string) (uint64, float64) {
	metric := gather(t, registry, "request_duration_seconds", jobName)
	if metric == nil {
		return 0, 0
	}

	return metric.GetHistogram().GetSampleCount(), metric.GetHistogram().GetSampleSum()
}
