// Package work provides a worker pool that drives a clamp service with jobs
// dequeued from a queue.
package work

import (
	"time"

	"gopkg.in/tomb.v2"

	"github.com/256dpi/clamp"
	"github.com/256dpi/clamp/queue"
)

// Pool dequeues jobs and processes them using a service. The service is
// probed for readiness before every call and each returned future is awaited
// before the next job is dequeued.
type Pool[D, R any] struct {
	// The queue that supplies jobs.
	Queue queue.Queue[D]

	// The service that processes requests. Usually a terminal service
	// decorated with a chain of layers.
	Service clamp.Service[D, R]

	// The number of workers that dequeue and process jobs in parallel.
	//
	// Default: 2.
	Workers int

	// The interval at which an unready service is probed again.
	//
	// Default: 100ms.
	Interval time.Duration

	// The callback invoked with processing errors.
	Reporter func(error)

	tomb tomb.Tomb
}

// Run will start the workers of the pool.
func (p *Pool[D, R]) Run() {
	// check queue
	if p.Queue == nil {
		panic("work: missing queue")
	}

	// check service
	if p.Service == nil {
		panic("work: missing service")
	}

	// set default workers
	if p.Workers == 0 {
		p.Workers = 2
	}

	// set default interval
	if p.Interval == 0 {
		p.Interval = 100 * time.Millisecond
	}

	// start workers
	for i := 0; i < p.Workers; i++ {
		p.tomb.Go(p.worker)
	}
}

// Close will stop the workers and wait until they have returned.
func (p *Pool[D, R]) Close() {
	// kill tomb
	p.tomb.Kill(nil)

	// await workers
	_ = p.tomb.Wait()
}

func (p *Pool[D, R]) worker() error {
	// get context
	ctx := p.tomb.Context(nil)

	// run forever
	for {
		// return if dying
		select {
		case <-p.tomb.Dying():
			return tomb.ErrDying
		default:
		}

		// dequeue job
		job, err := p.Queue.Dequeue(ctx)
		if ctx.Err() != nil {
			return tomb.ErrDying
		} else if err != nil {
			p.report(err)
			continue
		}

		// await readiness
		for {
			err = p.Service.Ready(ctx)
			if err == nil {
				break
			} else if !clamp.ErrNotReady.Is(err) {
				p.report(err)
			}

			// wait some time before probing again
			select {
			case <-time.After(p.Interval):
				// continue
			case <-p.tomb.Dying():
				return tomb.ErrDying
			}
		}

		// call service and await result
		future := p.Service.Call(ctx, clamp.NewRequest(job.Data))
		_, err = clamp.Await(ctx, future)
		if err != nil && ctx.Err() == nil {
			p.report(err)
		}
	}
}

func (p *Pool[D, R]) report(err error) {
	if p.Reporter != nil {
		p.Reporter(err)
	}
}
