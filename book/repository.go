package book

import (
	"context"
	"errors"
)

/* Small interfaces, composed below.
 * They describe what the catalog needs from storage, not what a given database offers.
 */

// ErrNotFound is returned when a statement matched no row.
// It lets callers tell "nothing there" apart from "the statement failed".
var ErrNotFound = errors.New("book not found")

type Reader interface {
	Select(ctx context.Context, id int64) (Book, error)
	// SelectAll returns an empty slice and a nil error for an empty table
	SelectAll(ctx context.Context) ([]Book, error)
}

type Writer interface {
	Insert(ctx context.Context, book Book) (int64, error)
	Update(ctx context.Context, book Book) error
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
