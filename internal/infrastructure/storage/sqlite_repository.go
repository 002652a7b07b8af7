package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/Daniel-1961/Christain-Book-Bot/internal/domain"
	"github.com/Daniel-1961/Christain-Book-Bot/internal/ports"
)

const bookColumns = "id, title, caption, author, category, mime_type, archive_ref, source_date"

// SQLiteRepository persists the book catalog in a local SQLite file. The
// catalog is append-only and written by a single pipeline run at a time; the
// interactive bot reads concurrently, which WAL mode supports natively.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.CatalogRepository = (*SQLiteRepository)(nil)

// Open creates the data directory if needed, opens (or creates) the SQLite
// database at path, and ensures the schema.
func Open(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL lets the bot keep reading while the scraper appends; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) ensureSchema() error {
	_, err := r.db.Exec(`
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    caption TEXT NOT NULL DEFAULT '',
    author TEXT NOT NULL DEFAULT 'Unknown',
    category TEXT NOT NULL DEFAULT 'Other',
    mime_type TEXT NOT NULL DEFAULT '',
    archive_ref TEXT NOT NULL,
    source_date TEXT NOT NULL DEFAULT '',
    UNIQUE (title)
);
CREATE INDEX IF NOT EXISTS idx_books_category ON books (category);
CREATE INDEX IF NOT EXISTS idx_books_author ON books (author);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Exists reports whether a book with the given title is already cataloged.
// Title is the catalog's natural dedup key.
func (r *SQLiteRepository) Exists(ctx context.Context, title string) (bool, error) {
	query, args, err := sq.Select("1").From("books").Where(sq.Eq{"title": title}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.PersistenceError{Title: title, Err: err}
	}
	return true, nil
}

// Insert appends one book row. A unique-title collision maps to
// domain.ErrDuplicate; any other failure wraps as a PersistenceError.
func (r *SQLiteRepository) Insert(ctx context.Context, book domain.Book) error {
	query, args, err := sq.Insert("books").
		Columns("title", "caption", "author", "category", "mime_type", "archive_ref", "source_date").
		Values(book.Title, book.Caption, book.Author, book.Category, book.ContentType, book.ArchiveRef, formatDate(book.SourceDate)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return domain.ErrDuplicate
		}
		return &domain.PersistenceError{Title: book.Title, Err: err}
	}
	return nil
}

// ListByCategory returns the category's books ordered by title.
func (r *SQLiteRepository) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	return r.list(ctx, sq.Eq{"category": category})
}

// ListByAuthor returns the author's books ordered by title.
func (r *SQLiteRepository) ListByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return r.list(ctx, sq.Eq{"author": author})
}

// Search matches the keyword as a substring of title or author.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string) ([]domain.Book, error) {
	pattern := "%" + keyword + "%"
	return r.list(ctx, sq.Or{sq.Like{"title": pattern}, sq.Like{"author": pattern}})
}

// All returns every cataloged book ordered by title.
func (r *SQLiteRepository) All(ctx context.Context) ([]domain.Book, error) {
	return r.list(ctx, nil)
}

func (r *SQLiteRepository) list(ctx context.Context, where any) ([]domain.Book, error) {
	builder := sq.Select(bookColumns).From("books").OrderBy("title ASC")
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return books, nil
}

// Categories returns the distinct non-empty category labels, sorted.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// Authors returns the distinct non-empty author labels, sorted.
func (r *SQLiteRepository) Authors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "author")
}

func (r *SQLiteRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query, args, err := sq.Select("DISTINCT " + column).From("books").
		Where(sq.NotEq{column: ""}).OrderBy(column + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build distinct query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return values, nil
}

// GetByRef resolves a catalog primary key or an archive reference back to the
// full record. Returns domain.ErrNotFound when nothing matches.
func (r *SQLiteRepository) GetByRef(ctx context.Context, ref string) (domain.Book, error) {
	query, args, err := sq.Select(bookColumns).From("books").
		Where(sq.Or{sq.Eq{"id": ref}, sq.Eq{"archive_ref": ref}}).
		Limit(1).ToSql()
	if err != nil {
		return domain.Book{}, fmt.Errorf("build get query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Book{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (domain.Book, error) {
	var (
		book domain.Book
		date string
	)
	err := row.Scan(&book.ID, &book.Title, &book.Caption, &book.Author,
		&book.Category, &book.ContentType, &book.ArchiveRef, &date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Book{}, err
		}
		return domain.Book{}, fmt.Errorf("scan book: %w", err)
	}
	book.SourceDate = parseDate(date)
	return book, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
