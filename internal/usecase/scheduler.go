package usecase

import (
	"context"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// Scheduler wires the interval driver with the ingestion use case for
// daemon-mode scraping.
type Scheduler struct {
	driver   ports.Scheduler
	ingestor *Ingestor
}

// NewScheduler returns a helper to start/stop recurring ingestion runs.
func NewScheduler(driver ports.Scheduler, ingestor *Ingestor) *Scheduler {
	return &Scheduler{driver: driver, ingestor: ingestor}
}

// Start registers the ingestion run with the provided scheduler. Run already
// logs its outcome, so the job swallows the returned report.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.ingestor == nil {
		return nil
	}

	job := func() {
		_, _ = s.ingestor.Run(ctx)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
