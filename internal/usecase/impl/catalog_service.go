package impl

import (
	"context"
	"log/slog"

	deliverycontext "libris/internal/delivery/context"
	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	bookRepo repository.BookRepository
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	BookRepo repository.BookRepository
	Logger   *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		bookRepo: params.BookRepo,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBooks returns the whole catalog in store-native order.
func (srv *catalogService) ListBooks(ctx context.Context) ([]*usecase.BookOutput, error) {
	books, err := srv.bookRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return usecase.BookOutputsFrom(books), nil
}

// CreateBook inserts a record; duplicate titles are allowed by contract.
func (srv *catalogService) CreateBook(ctx context.Context, input *usecase.CreateBookInput) error {
	book := &entity.Book{
		Title:        input.Title,
		Price:        input.Price,
		Availability: input.Availability,
		Rating:       input.Rating,
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Info("Book created", slog.Uint64("id", uint64(book.ID)), slog.String("title", book.Title))

	return nil
}

// DeleteBook removes a record by id, surfacing a 404-class error when the id
// does not exist.
func (srv *catalogService) DeleteBook(ctx context.Context, id uint) error {
	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return domainerrors.ErrBookNotFound
		}

		return errors.Wrap(err, "failed to delete book")
	}

	srv.log(ctx).Info("Book deleted", slog.Uint64("id", uint64(id)))

	return nil
}

// SearchBooks matches a case-insensitive title substring. Zero matches map
// to a 404-class error, preserving the store's empty-search-as-error
// contract; switching to an empty list is a one-point change in the
// repository.
func (srv *catalogService) SearchBooks(ctx context.Context, title string) ([]*usecase.BookOutput, error) {
	books, err := srv.bookRepo.SearchByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrNoBooksMatched) {
			return nil, domainerrors.ErrNoBooksMatched
		}

		return nil, errors.Wrap(err, "failed to search books")
	}

	return usecase.BookOutputsFrom(books), nil
}
