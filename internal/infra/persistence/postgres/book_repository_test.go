package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"libris/internal/domain/entity"
	"libris/internal/domain/repository"
)

// newMockDB wires a sqlmock connection into GORM's postgres driver so
// repository SQL can be asserted without a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func bookRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "price", "availability", "rating"})
}

func TestBookRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "books"`)).
		WillReturnRows(bookRows().
			AddRow(1, "Dune", "$10", "In stock", "Five").
			AddRow(2, "Sharp Objects", "£47.82", "In stock", "Four"))

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, uint(2), books[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "books"`)).
		WithArgs("Dune", "$10", "In stock", "Five").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	book := &entity.Book{Title: "Dune", Price: "$10", Availability: "In stock", Rating: "Five"}
	err := repo.Create(context.Background(), book)
	require.NoError(t, err)
	assert.Equal(t, uint(7), book.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "books" WHERE "books"."id" = $1`)).
		WithArgs(3, 1).
		WillReturnRows(bookRows().AddRow(3, "Dune", "$10", "In stock", "Five"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "books" WHERE "books"."id" = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "books" WHERE "books"."id" = $1`)).
		WithArgs(99, 1).
		WillReturnRows(bookRows())

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_SearchByTitle(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "books" WHERE LOWER(title) LIKE $1`)).
		WithArgs("%dun%").
		WillReturnRows(bookRows().AddRow(1, "Dune", "$10", "In stock", "Five"))

	books, err := repo.SearchByTitle(context.Background(), "DuN")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_SearchByTitleNoMatches(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "books" WHERE LOWER(title) LIKE $1`)).
		WithArgs("%nothing%").
		WillReturnRows(bookRows())

	books, err := repo.SearchByTitle(context.Background(), "nothing")
	assert.ErrorIs(t, err, repository.ErrNoBooksMatched)
	assert.Nil(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}
