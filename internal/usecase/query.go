package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

// QueryService is the thin read side used by the bot: list categories and
// authors, list books per label, resolve a selection, and re-deliver the
// underlying content into a conversation.
type QueryService struct {
	repository ports.CatalogRepository
	deliverer  ports.Deliverer
	logger     *slog.Logger
}

// NewQueryService wires the catalog with the redelivery adapter.
func NewQueryService(repo ports.CatalogRepository, deliverer ports.Deliverer, log *slog.Logger) *QueryService {
	return &QueryService{repository: repo, deliverer: deliverer, logger: log}
}

// Categories lists the distinct category labels present in the catalog.
func (s *QueryService) Categories(ctx context.Context) ([]string, error) {
	return s.repository.Categories(ctx)
}

// Authors lists the distinct author labels present in the catalog.
func (s *QueryService) Authors(ctx context.Context) ([]string, error) {
	return s.repository.Authors(ctx)
}

// BooksByCategory lists the category's books ordered by title.
func (s *QueryService) BooksByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	return s.repository.ListByCategory(ctx, category)
}

// BooksByAuthor lists the author's books ordered by title.
func (s *QueryService) BooksByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return s.repository.ListByAuthor(ctx, author)
}

// Search matches the keyword as a substring of title or author.
func (s *QueryService) Search(ctx context.Context, keyword string) ([]domain.Book, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	return s.repository.Search(ctx, keyword)
}

// Resolve maps a catalog primary key or archive reference to the full record.
func (s *QueryService) Resolve(ctx context.Context, ref string) (domain.Book, error) {
	return s.repository.GetByRef(ctx, ref)
}

// Deliver resolves the reference and asks the archive to copy the item into
// the target conversation. domain.ErrNotFound is returned unchanged so the
// bot surface can render "item unavailable" instead of a transport fault.
func (s *QueryService) Deliver(ctx context.Context, ref string, chatID int64) error {
	book, err := s.repository.GetByRef(ctx, ref)
	if err != nil {
		return err
	}
	if book.ArchiveRef == "" {
		return domain.ErrNotFound
	}

	if err := s.deliverer.Deliver(ctx, book.ArchiveRef, chatID); err != nil {
		return fmt.Errorf("redeliver %q: %w", book.Title, err)
	}

	if s.logger != nil {
		s.logger.Info("book delivered", "title", book.Title, "chat", chatID)
	}
	return nil
}
