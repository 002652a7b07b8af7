package scheduler

import (
	"context"
	"time"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// IntervalScheduler re-runs a job on a fixed interval. Re-running is the
// catalog's refresh mechanism; the job itself is idempotent thanks to the
// pipeline's dedup check.
type IntervalScheduler struct {
	interval time.Duration
	stop     chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler with the given period.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	return &IntervalScheduler{interval: interval}
}

// Start runs the job once immediately, then on every tick until Stop or
// context cancellation.
func (s *IntervalScheduler) Start(ctx context.Context, job func()) error {
	if job == nil || s.interval <= 0 {
		return nil
	}

	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job()
		for {
			select {
			case <-ticker.C:
				job()
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
