package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

var testAllowedTypes = []string{
	"application/pdf",
	"application/epub+zip",
}

type fakeSource struct {
	candidates []domain.Candidate
	err        error
}

func (f *fakeSource) Fetch(_ context.Context, limit int) ([]domain.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

type fakeRepo struct {
	existing  map[string]bool
	inserted  []domain.Book
	insertErr error
	existsErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{existing: map[string]bool{}}
}

func (f *fakeRepo) Exists(_ context.Context, title string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[title], nil
}

func (f *fakeRepo) Insert(_ context.Context, book domain.Book) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.existing[book.Title] = true
	f.inserted = append(f.inserted, book)
	return nil
}

func (f *fakeRepo) ListByCategory(context.Context, string) ([]domain.Book, error) { return nil, nil }
func (f *fakeRepo) ListByAuthor(context.Context, string) ([]domain.Book, error)  { return nil, nil }
func (f *fakeRepo) Categories(context.Context) ([]string, error)                 { return nil, nil }
func (f *fakeRepo) Authors(context.Context) ([]string, error)                    { return nil, nil }
func (f *fakeRepo) Search(context.Context, string) ([]domain.Book, error)        { return nil, nil }
func (f *fakeRepo) GetByRef(context.Context, string) (domain.Book, error) {
	return domain.Book{}, domain.ErrNotFound
}
func (f *fakeRepo) All(context.Context) ([]domain.Book, error) { return nil, nil }

type fakePublisher struct {
	// errs maps title to a queue of errors returned before success.
	errs      map[string][]error
	published []domain.Candidate
	nextRef   int
}

func (f *fakePublisher) Publish(_ context.Context, candidate domain.Candidate) (string, error) {
	if queue := f.errs[candidate.Title]; len(queue) > 0 {
		err := queue[0]
		f.errs[candidate.Title] = queue[1:]
		return "", err
	}
	f.published = append(f.published, candidate)
	f.nextRef++
	return strconv.Itoa(f.nextRef), nil
}

func candidate(title, contentType string) domain.Candidate {
	return domain.Candidate{
		SourceChat:  "reformedbooks",
		MessageID:   100,
		Title:       title,
		Caption:     "caption for " + title,
		ContentType: contentType,
		PostedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestIngestor(src *fakeSource, repo *fakeRepo, pub *fakePublisher) *Ingestor {
	in := NewIngestor(IngestDeps{
		Source:       src,
		Repository:   repo,
		Publisher:    pub,
		AllowedTypes: testAllowedTypes,
		Limit:        100,
	})
	in.sleep = func(time.Duration) {}
	return in
}

func TestRunPublishesAndPersists(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Calvin Institutes.pdf", "application/pdf"),
		candidate("Spurgeon Sermons.epub", "application/epub+zip"),
	}}
	repo := newFakeRepo()
	pub := &fakePublisher{}

	report, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Published)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, repo.inserted, 2)
	first := repo.inserted[0]
	assert.Equal(t, "Calvin Institutes.pdf", first.Title)
	assert.Equal(t, "John Calvin", first.Author)
	assert.Equal(t, "1", first.ArchiveRef)
	assert.Equal(t, "application/pdf", first.ContentType)
	assert.Equal(t, "Charles Spurgeon", repo.inserted[1].Author)
}

func TestRunFiltersDisallowedTypes(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Books.zip", "application/zip"),
		candidate("Books.rar", "application/x-rar-compressed"),
		candidate("Real Book.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	pub := &fakePublisher{}

	report, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.NoError(t, err)

	// Filter skips are silent: not published, not failed, not duplicates.
	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Duplicates)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "Real Book.pdf", pub.published[0].Title)
}

func TestRunDedupNeverRepublishes(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Already There.pdf", "application/pdf"),
		candidate("New One.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	repo.existing["Already There.pdf"] = true
	pub := &fakePublisher{}

	report, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Published)
	assert.Equal(t, 1, report.Duplicates)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "New One.pdf", pub.published[0].Title)
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		candidate("One.pdf", "application/pdf"),
		candidate("Two.pdf", "application/pdf"),
		candidate("Three.epub", "application/epub+zip"),
	}
	repo := newFakeRepo()
	pub := &fakePublisher{}

	first, err := newTestIngestor(&fakeSource{candidates: candidates}, repo, pub).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Published)

	second, err := newTestIngestor(&fakeSource{candidates: candidates}, repo, pub).Run(context.Background())
	require.NoError(t, err)

	// No net-new rows; run-2 skip counter equals run-1 publish counter.
	assert.Equal(t, 0, second.Published)
	assert.Equal(t, first.Published, second.Duplicates)
	assert.Len(t, repo.inserted, 3)
}

func TestRunTitleFallback(t *testing.T) {
	t.Parallel()

	c := candidate("", "application/pdf")
	src := &fakeSource{candidates: []domain.Candidate{c}}
	repo := newFakeRepo()
	pub := &fakePublisher{}

	_, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, domain.UnknownFileName, repo.inserted[0].Title)
}

func TestRunRateLimitBackoffAndRetry(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Throttled.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	pub := &fakePublisher{errs: map[string][]error{
		"Throttled.pdf": {&domain.RateLimitedError{RetryAfter: 7 * time.Second}},
	}}

	in := newTestIngestor(src, repo, pub)
	var waits []time.Duration
	in.sleep = func(d time.Duration) { waits = append(waits, d) }

	report, err := in.Run(context.Background())
	require.NoError(t, err)

	// Exactly one wait of the mandated length, then exactly one retry.
	require.Equal(t, []time.Duration{7 * time.Second}, waits)
	assert.Equal(t, 1, report.Published)
	require.Len(t, pub.published, 1)
}

func TestRunRateLimitRetryFailureSkipsItem(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Hopeless.pdf", "application/pdf"),
		candidate("Fine.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	pub := &fakePublisher{errs: map[string][]error{
		"Hopeless.pdf": {
			&domain.RateLimitedError{RetryAfter: time.Second},
			&domain.RateLimitedError{RetryAfter: time.Second},
		},
	}}

	in := newTestIngestor(src, repo, pub)
	var waits int
	in.sleep = func(time.Duration) { waits++ }

	report, err := in.Run(context.Background())
	require.NoError(t, err)

	// Second rate limit escalates to a publish failure; the run continues.
	assert.Equal(t, 1, waits)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Published)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "Fine.pdf", repo.inserted[0].Title)
}

func TestRunPublishErrorDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	var candidates []domain.Candidate
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("Book %02d.pdf", i), "application/pdf"))
	}
	repo := newFakeRepo()
	pub := &fakePublisher{errs: map[string][]error{
		"Book 04.pdf": {&domain.PublishError{Title: "Book 04.pdf", Err: errors.New("media missing")}},
	}}

	report, err := newTestIngestor(&fakeSource{candidates: candidates}, repo, pub).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, report.Published)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, repo.inserted, 9)
}

func TestRunPersistenceErrorLogsAndContinues(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Orphaned.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	repo.insertErr = &domain.PersistenceError{Title: "Orphaned.pdf", Err: errors.New("disk full")}
	pub := &fakePublisher{}

	report, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.NoError(t, err)

	// The item was archived but could not be cataloged: counted as failed,
	// run still completes cleanly.
	assert.Equal(t, 0, report.Published)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, pub.published, 1)
}

func TestRunFatalWhenDedupLookupFails(t *testing.T) {
	t.Parallel()

	src := &fakeSource{candidates: []domain.Candidate{
		candidate("Any.pdf", "application/pdf"),
	}}
	repo := newFakeRepo()
	repo.existsErr = errors.New("store unreachable")
	pub := &fakePublisher{}

	_, err := newTestIngestor(src, repo, pub).Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, pub.published)
}
