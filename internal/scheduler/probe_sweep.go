// Package scheduler runs the background probe sweep that keeps the
// status cache warm.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
)

// DefaultSweepConcurrency caps simultaneous probes during a sweep so a
// large directory does not open hundreds of sockets at once.
const DefaultSweepConcurrency = 8

// Prober is the single-endpoint check the sweeper fans out over.
type Prober interface {
	Probe(ctx context.Context, address string) probe.Result
}

// EntrySource supplies the entries to sweep.
type EntrySource interface {
	Snapshot() []*domain.Entry
}

// ProbeSweeper periodically probes every entry and records the results
// in the status cache. A manual trigger channel lets the HTTP layer
// request an off-schedule sweep.
type ProbeSweeper struct {
	entries       EntrySource
	prober        Prober
	cache         *probe.StatusCache
	logger        logger.Logger
	interval      time.Duration
	concurrency   int
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewProbeSweeper creates a sweeper. interval <= 0 disables the timer;
// the manual trigger still works.
func NewProbeSweeper(
	entries EntrySource,
	prober Prober,
	cache *probe.StatusCache,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ProbeSweeper {
	return &ProbeSweeper{
		entries:       entries,
		prober:        prober,
		cache:         cache,
		logger:        log,
		interval:      interval,
		concurrency:   DefaultSweepConcurrency,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start launches the sweep loop in the background.
func (ps *ProbeSweeper) Start(ctx context.Context) {
	var tickCh <-chan time.Time
	var ticker *time.Ticker
	if ps.interval > 0 {
		ticker = time.NewTicker(ps.interval)
		tickCh = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tickCh:
				ps.Sweep(ctx)
			case <-ps.manualTrigger:
				ps.logger.Info("manual probe sweep triggered")
				ps.Sweep(ctx)
			case <-ps.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweep loop.
func (ps *ProbeSweeper) Stop() {
	close(ps.stopCh)
}

// Sweep probes every entry with bounded concurrency and stores each
// result under the entry's id. Results land in the cache as they
// arrive, so a slow endpoint never holds back the rest.
func (ps *ProbeSweeper) Sweep(ctx context.Context) {
	entries := ps.entries.Snapshot()
	if len(entries) == 0 {
		ps.cache.MarkSweep(time.Now())
		return
	}

	start := time.Now()
	ps.logger.Info("probe sweep started", logger.Int("entries", len(entries)))

	sem := make(chan struct{}, ps.concurrency)
	var wg sync.WaitGroup
	for _, e := range entries {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(e *domain.Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			ps.cache.Set(e.ID, ps.prober.Probe(ctx, e.Address))
		}(e)
	}
	wg.Wait()

	ps.cache.MarkSweep(time.Now())
	ps.logger.Info("probe sweep finished",
		logger.Int("entries", len(entries)),
		logger.Duration("took", time.Since(start)))
}
