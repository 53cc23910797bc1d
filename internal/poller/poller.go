// Package poller runs one job on a fixed interval on behalf of a live view.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Wikid82/snare/internal/logger"
)

// DefaultInterval is the refresh period of live views.
const DefaultInterval = 3 * time.Second

// Job is one refresh. ctx is canceled when the schedule stops.
type Job func(ctx context.Context)

// Poller owns at most one schedule at a time.
type Poller struct {
	interval time.Duration

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
	first  sync.WaitGroup
}

// New returns a stopped poller. Intervals below one second are raised to one
// second.
func New(interval time.Duration) *Poller {
	if interval < time.Second {
		interval = time.Second
	}
	return &Poller{interval: interval}
}

func (p *Poller) Interval() time.Duration { return p.interval }

// Start stops any previous schedule, runs job once right away and then once
// per interval until Stop is called or parent is canceled. A tick is skipped
// while the previous run is still going.
func (p *Poller) Start(parent context.Context, job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	ctx, cancel := context.WithCancel(parent)
	cronLog := cron.PrintfLogger(logger.Component("poller"))
	c := cron.New(cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)))
	id := c.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	}))
	c.Start()

	p.cron = c
	p.cancel = cancel

	wrapped := c.Entry(id).WrappedJob
	p.first.Add(1)
	go func() {
		defer p.first.Done()
		wrapped.Run()
	}()

	// A canceled parent ends the schedule without an explicit Stop.
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
}

// Stop cancels the schedule and waits for a running job to return. It is
// safe to call on a stopped poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.cron == nil {
		return
	}
	p.cancel()
	<-p.cron.Stop().Done()
	p.first.Wait()
	p.cron = nil
	p.cancel = nil
}
