package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound signals that a catalog reference no longer resolves, either
// because the row is missing or the archive message was deleted out-of-band.
// The bot surface must translate it into an "item unavailable" reply.
var ErrNotFound = errors.New("book not found")

// ErrDuplicate is returned when an insert collides with the catalog's unique
// title key. The pipeline checks Exists first, so hitting this means two
// writers raced; the item is already archived either way.
var ErrDuplicate = errors.New("book already cataloged")

// RateLimitedError carries the wait the platform mandated before the same
// call may be retried.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// PublishError wraps any non-retryable transport failure while moving a
// candidate into the archive. Per-item fatal: the run continues without it.
type PublishError struct {
	Title string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %q: %v", e.Title, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed catalog write. When it follows a successful
// publish the content exists in the archive but is not discoverable, so the
// caller must log title and archiveRef for manual reconciliation.
type PersistenceError struct {
	Title string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Title, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
