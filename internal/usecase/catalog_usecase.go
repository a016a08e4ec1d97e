package usecase

import (
	"context"

	"libris/internal/domain/entity"
)

// CreateBookInput defines the data required to add a catalog record.
// Price, availability and rating stay opaque display strings end to end.
type CreateBookInput struct {
	Title        string `json:"title" validate:"required"`
	Price        string `json:"price"`
	Availability string `json:"availability"`
	Rating       string `json:"rating"`
}

// BookOutput is the public shape of a catalog record.
type BookOutput struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	Availability string `json:"availability"`
	Rating       string `json:"rating"`
}

// BookOutputFrom maps a domain Book to its public shape.
func BookOutputFrom(book *entity.Book) *BookOutput {
	return &BookOutput{
		ID:           book.ID,
		Title:        book.Title,
		Price:        book.Price,
		Availability: book.Availability,
		Rating:       book.Rating,
	}
}

// BookOutputsFrom maps a slice of domain Books to their public shape.
// It never returns nil so an empty catalog serializes as [].
func BookOutputsFrom(books []*entity.Book) []*BookOutput {
	outputs := make([]*BookOutput, 0, len(books))
	for _, book := range books {
		outputs = append(outputs, BookOutputFrom(book))
	}

	return outputs
}

// CatalogUsecase defines the interface for catalog business operations.
// Every method is reached only through the access gate; there is no
// anonymous path to the catalog.
type CatalogUsecase interface {
	// ListBooks returns the whole catalog; empty catalogs are an empty list.
	ListBooks(ctx context.Context) ([]*BookOutput, error)

	// CreateBook always inserts; duplicate titles are allowed.
	CreateBook(ctx context.Context, input *CreateBookInput) error

	// DeleteBook removes a record by id, or fails with a not-found error.
	DeleteBook(ctx context.Context, id uint) error

	// SearchBooks matches a case-insensitive title substring; zero matches
	// is an error by contract.
	SearchBooks(ctx context.Context, title string) ([]*BookOutput, error)
}
