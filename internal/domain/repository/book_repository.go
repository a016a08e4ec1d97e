package repository

import (
	"context"

	"libris/internal/domain/entity"
	"libris/internal/errors"
)

// ErrBookNotFound is returned when no book exists for a given id.
var ErrBookNotFound = errors.New("book not found")

// ErrNoBooksMatched is returned when a title search matches zero records.
// An empty search result is an error in this store's contract, not an empty
// slice; callers that want the empty-list behavior change only this method.
var ErrNoBooksMatched = errors.New("no matching books found")

// BookRepository provides CRUD and substring search over catalog records.
// Every operation re-queries the store; there is no in-process caching.
type BookRepository interface {
	// Migrate ensures the backing table exists. The ingestion collaborator
	// calls it once before writing.
	Migrate(ctx context.Context) error

	// List returns all books in store-native order.
	List(ctx context.Context) ([]*entity.Book, error)

	// Create always inserts; titles carry no uniqueness constraint, which
	// also makes it the duplicate-tolerant ingestion path for the scraper.
	Create(ctx context.Context, book *entity.Book) error

	// Delete removes the book with the given id, or returns ErrBookNotFound.
	// The existence check and the delete are two statements; a concurrent
	// delete of the same id may win the race. That is accepted behavior.
	Delete(ctx context.Context, id uint) error

	// SearchByTitle returns books whose lowercased title contains the
	// lowercased substring, or ErrNoBooksMatched when nothing does.
	SearchByTitle(ctx context.Context, title string) ([]*entity.Book, error)
}
