// Package poller wires up the cron job that periodically re-runs the scrape
// cycle and keeps a snapshot of the most recent run for the status API.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"jobwatch/internal/logging/types"
	"jobwatch/pkg/models"
)

// CycleFunc runs one complete scrape cycle.
type CycleFunc func(ctx context.Context) (*models.AggregateResult, error)

// RunStatus is the recorded outcome of the most recent cycle.
type RunStatus struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	Listings     int
	TotalMatches int
	TotalPages   int
	FailedPages  int
	Workers      int
	Elapsed      time.Duration
	Err          string
}

// Poller re-runs the scrape cycle on a fixed interval. Cycles never overlap:
// a tick that arrives while the previous cycle is still running is skipped.
type Poller struct {
	cron     *cron.Cron
	interval time.Duration
	run      CycleFunc
	logger   types.Logger

	mu      sync.Mutex
	busy    bool
	lastRun *RunStatus
}

// New creates a Poller that fires every interval.
func New(interval time.Duration, run CycleFunc, logger types.Logger) *Poller {
	return &Poller{
		cron:     cron.New(),
		interval: interval,
		run:      run,
		logger:   logger,
	}
}

// Start registers the cron job and runs one cycle immediately so the report
// exists without waiting for the first tick.
func (p *Poller) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, func() { p.runCycle(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	p.cron.Start()
	p.logger.Info("Polling started", map[string]interface{}{
		"interval": p.interval.String(),
	})

	go p.runCycle(ctx)

	return nil
}

// Stop stops the ticker. An in-flight cycle is allowed to finish.
func (p *Poller) Stop() {
	p.cron.Stop()
	p.logger.Info("Polling stopped")
}

// LastRun returns a copy of the most recent cycle's status, or nil before the
// first cycle finishes.
func (p *Poller) LastRun() *RunStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastRun == nil {
		return nil
	}
	status := *p.lastRun
	return &status
}

func (p *Poller) runCycle(ctx context.Context) {
	if !p.tryBegin() {
		p.logger.Warn("Previous scrape cycle still running, skipping this tick")
		return
	}
	defer p.end()

	status := &RunStatus{StartedAt: time.Now()}

	result, err := p.run(ctx)
	status.FinishedAt = time.Now()

	if err != nil {
		status.Err = err.Error()
		p.logger.Error("Scrape cycle failed", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		status.Listings = len(result.Listings)
		status.TotalMatches = result.TotalMatches
		status.TotalPages = result.TotalPages
		status.FailedPages = result.FailedPages
		status.Workers = result.Workers
		status.Elapsed = result.Elapsed
	}

	p.mu.Lock()
	p.lastRun = status
	p.mu.Unlock()
}

func (p *Poller) tryBegin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		return false
	}
	p.busy = true
	return true
}

func (p *Poller) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}
