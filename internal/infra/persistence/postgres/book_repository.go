package postgres

import (
	"context"
	"strings"

	"libris/internal/domain/entity"
	domainerrors "libris/internal/domain/errors"
	"libris/internal/domain/repository"
	"libris/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// bookRepository implements the domain.BookRepository interface using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

// Migrate creates the books table if it does not exist yet. The scraping
// collaborator calls this before its first ingest.
func (repo *bookRepository) Migrate(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).AutoMigrate(&model.BookModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate books table")
	}

	return nil
}

// List returns every book in store-native order. Each call re-queries.
func (repo *bookRepository) List(ctx context.Context) ([]*entity.Book, error) {
	var bookMs []*model.BookModel
	if err := repo.db.WithContext(ctx).Find(&bookMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return toBookDomains(bookMs), nil
}

// Create always inserts. Titles are not unique, so this doubles as the
// duplicate-tolerant ingestion path.
func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)

	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required book information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID

	return nil
}

// Delete checks that the id exists before deleting so the missing case is
// observable as ErrBookNotFound. The two statements are intentionally not a
// transaction; a concurrent delete of the same id may win the race.
func (repo *bookRepository) Delete(ctx context.Context, id uint) error {
	var bookM model.BookModel
	err := repo.db.WithContext(ctx).First(&bookM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrBookNotFound
		}

		return errors.Wrap(err, "failed to check book existence")
	}

	if err := repo.db.WithContext(ctx).Delete(&model.BookModel{}, id).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete book")
	}

	return nil
}

// SearchByTitle matches on substring containment over the lowercased title.
// Zero matches is an error by contract, not an empty slice.
func (repo *bookRepository) SearchByTitle(ctx context.Context, title string) ([]*entity.Book, error) {
	var bookMs []*model.BookModel
	pattern := "%" + strings.ToLower(title) + "%"
	err := repo.db.WithContext(ctx).
		Where("LOWER(title) LIKE ?", pattern).
		Find(&bookMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search books by title")
	}

	if len(bookMs) == 0 {
		return nil, repository.ErrNoBooksMatched
	}

	return toBookDomains(bookMs), nil
}

// --- Mapper Functions ---

func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:           data.ID,
		Title:        data.Title,
		Price:        data.Price,
		Availability: data.Availability,
		Rating:       data.Rating,
	}
}

func toBookDomains(data []*model.BookModel) []*entity.Book {
	books := make([]*entity.Book, 0, len(data))
	for _, bookM := range data {
		books = append(books, toBookDomain(bookM))
	}

	return books
}

func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:           data.ID,
		Title:        data.Title,
		Price:        data.Price,
		Availability: data.Availability,
		Rating:       data.Rating,
	}
}
