package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/classify"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// IngestDeps wires all driven adapters into the ingestion pipeline.
type IngestDeps struct {
	Source       ports.CandidateSource
	Repository   ports.CatalogRepository
	Publisher    ports.ArchivePublisher
	Classifier   *classify.Classifier
	AllowedTypes []string
	Limit        int
	Logger       *slog.Logger
}

// Ingestor implements the archive-ingestion workflow: iterate the source
// stream, filter by content type, classify, dedupe against the catalog,
// publish into the archive, and persist the catalog row.
//
// Processing is strictly sequential: one candidate is published and persisted
// before the next is considered, so every persisted row corresponds to a real
// archived item even if the run is cut short.
type Ingestor struct {
	source     ports.CandidateSource
	repository ports.CatalogRepository
	publisher  ports.ArchivePublisher
	classifier *classify.Classifier
	allowed    map[string]struct{}
	limit      int
	logger     *slog.Logger

	// sleep is swapped out in tests so rate-limit back-off is observable
	// without real waiting.
	sleep func(time.Duration)
}

// NewIngestor constructs the pipeline.
func NewIngestor(deps IngestDeps) *Ingestor {
	allowed := make(map[string]struct{}, len(deps.AllowedTypes))
	for _, t := range deps.AllowedTypes {
		allowed[t] = struct{}{}
	}
	classifier := deps.Classifier
	if classifier == nil {
		classifier = classify.New(nil, nil)
	}
	limit := deps.Limit
	if limit <= 0 {
		limit = 1000
	}
	return &Ingestor{
		source:     deps.Source,
		repository: deps.Repository,
		publisher:  deps.Publisher,
		classifier: classifier,
		allowed:    allowed,
		limit:      limit,
		logger:     deps.Logger,
		sleep:      time.Sleep,
	}
}

// Run executes one ingestion pass and reports its counters. Per-item publish
// and persist failures are logged and counted but never abort the run; a
// failing catalog lookup does, because without dedup the run is not
// idempotent.
func (in *Ingestor) Run(ctx context.Context) (domain.Report, error) {
	var report domain.Report

	if in.source == nil {
		return report, fmt.Errorf("candidate source is not configured")
	}

	candidates, err := in.source.Fetch(ctx, in.limit)
	if err != nil {
		return report, fmt.Errorf("fetch candidates: %w", err)
	}
	report.Scanned = len(candidates)

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if _, ok := in.allowed[candidate.ContentType]; !ok {
			continue
		}

		title := candidate.Title
		if title == "" {
			title = domain.UnknownFileName
		}

		exists, err := in.repository.Exists(ctx, title)
		if err != nil {
			return report, fmt.Errorf("dedup lookup %q: %w", title, err)
		}
		if exists {
			report.Duplicates++
			continue
		}

		text := title + " " + candidate.Caption
		candidate.Title = title
		candidate.Author = in.classifier.Author(text)
		candidate.Category = in.classifier.Category(text)

		archiveRef, err := in.publish(ctx, candidate)
		if err != nil {
			report.Failed++
			in.warn("publish failed, skipping item", "title", title, "error", err)
			continue
		}

		book := domain.Book{
			Title:       title,
			Caption:     candidate.Caption,
			Author:      candidate.Author,
			Category:    candidate.Category,
			ContentType: candidate.ContentType,
			ArchiveRef:  archiveRef,
			SourceDate:  candidate.PostedAt,
		}
		if err := in.repository.Insert(ctx, book); err != nil {
			report.Failed++
			// The content is in the archive but not discoverable; title and
			// archiveRef are logged so the row can be reconciled by hand.
			in.errorLog("catalog insert failed after publish",
				"title", title, "archiveRef", archiveRef, "error", err)
			continue
		}

		report.Published++
		in.info("book archived", "title", title,
			"author", candidate.Author, "category", candidate.Category, "ref", archiveRef)
	}

	in.info("ingestion run complete", "scanned", report.Scanned,
		"published", report.Published, "duplicates", report.Duplicates, "failed", report.Failed)
	return report, nil
}

// publish applies the rate-limit policy: on RateLimited, wait exactly the
// mandated interval and retry the same candidate once; a second failure of
// any kind escalates to a publish error.
func (in *Ingestor) publish(ctx context.Context, candidate domain.Candidate) (string, error) {
	archiveRef, err := in.publisher.Publish(ctx, candidate)
	if err == nil {
		return archiveRef, nil
	}

	var limited *domain.RateLimitedError
	if !errors.As(err, &limited) {
		return "", err
	}

	in.warn("rate limited, backing off", "title", candidate.Title, "retryAfter", limited.RetryAfter)
	in.sleep(limited.RetryAfter)

	archiveRef, err = in.publisher.Publish(ctx, candidate)
	if err != nil {
		return "", &domain.PublishError{Title: candidate.Title, Err: err}
	}
	return archiveRef, nil
}

func (in *Ingestor) info(msg string, args ...interface{}) {
	if in.logger != nil {
		in.logger.Info(msg, args...)
	}
}

func (in *Ingestor) warn(msg string, args ...interface{}) {
	if in.logger != nil {
		in.logger.Warn(msg, args...)
	}
}

func (in *Ingestor) errorLog(msg string, args ...interface{}) {
	if in.logger != nil {
		in.logger.Error(msg, args...)
	}
}
