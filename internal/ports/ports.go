package ports

import (
	"context"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
)

// CandidateSource walks the source channel's message stream and returns
// document candidates, newest first, up to the requested limit.
type CandidateSource interface {
	Fetch(ctx context.Context, limit int) ([]domain.Candidate, error)
}

// CatalogRepository persists archived books and answers the read side.
// The catalog is append-only; rows are written exactly once and never mutated.
type CatalogRepository interface {
	Exists(ctx context.Context, title string) (bool, error)
	Insert(ctx context.Context, book domain.Book) error
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	ListByAuthor(ctx context.Context, author string) ([]domain.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Authors(ctx context.Context) ([]string, error)
	Search(ctx context.Context, keyword string) ([]domain.Book, error)
	GetByRef(ctx context.Context, ref string) (domain.Book, error)
	All(ctx context.Context) ([]domain.Book, error)
}

// ArchivePublisher moves a candidate into the archive channel and returns the
// opaque archive reference used for later redelivery.
type ArchivePublisher interface {
	Publish(ctx context.Context, candidate domain.Candidate) (string, error)
}

// Deliverer re-sends an archived item, identified by its archive reference,
// into the requesting conversation.
type Deliverer interface {
	Deliver(ctx context.Context, archiveRef string, chatID int64) error
}

// Scheduler controls when recurring ingestion runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func()) error
	Stop(ctx context.Context) error
}
