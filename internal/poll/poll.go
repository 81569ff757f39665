// Package poll runs a task on a fixed interval with at most one run in flight.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval matches the dashboard refresh cadence.
const DefaultInterval = 5 * time.Second

// Task is one poll. It must honor ctx cancellation.
type Task func(ctx context.Context) error

// Poller ticks every interval. A tick that lands while the previous run is
// still executing is dropped and counted, never queued.
type Poller struct {
	interval time.Duration
	timeout  time.Duration
	task     Task
	onError  func(error)

	inFlight atomic.Bool
	runs     atomic.Int64
	skipped  atomic.Int64
}

// Option configures a Poller.
type Option func(*Poller)

// WithTimeout bounds each run.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) { p.timeout = d }
}

// WithErrorHandler receives task errors.
func WithErrorHandler(fn func(error)) Option {
	return func(p *Poller) { p.onError = fn }
}

// New builds a Poller. A non-positive interval means DefaultInterval.
func New(interval time.Duration, task Task, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{interval: interval, task: task}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls immediately and then on every tick until ctx ends. It returns
// only after the in-flight run, if any, has finished.
func (p *Poller) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx, &wg)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.tick(ctx, &wg)
		}
	}
}

// Start runs the poller in the background. The returned stop cancels the
// loop and any in-flight run, then waits for both to exit.
func (p *Poller) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx)
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

// Runs is the number of completed runs.
func (p *Poller) Runs() int64 { return p.runs.Load() }

// Skipped is the number of ticks dropped because a run was in flight.
func (p *Poller) Skipped() int64 { return p.skipped.Load() }

func (p *Poller) tick(ctx context.Context, wg *sync.WaitGroup) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.skipped.Add(1)
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.inFlight.Store(false)

		runCtx := ctx
		if p.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		err := p.task(runCtx)
		p.runs.Add(1)
		if err != nil && p.onError != nil {
			p.onError(err)
		}
	}()
}
