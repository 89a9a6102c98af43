//go:build !integration

package mysql

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/marcelsud/elibrary/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Repository{DB: db}, mock
}

func TestDSN(t *testing.T) {
	dsn := DSN("localhost", "3306", "library_db", "root", "")
	assert.True(t, strings.HasPrefix(dsn, "root@tcp(localhost:3306)/library_db?"), dsn)
	assert.Contains(t, dsn, "clientFoundRows=true")

	dsn = DSN("db.internal", "3307", "catalog", "librarian", "s3cret")
	assert.True(t, strings.HasPrefix(dsn, "librarian:s3cret@tcp(db.internal:3307)/catalog?"), dsn)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books (title, author, category) VALUES (?, ?, ?)")).
		WithArgs("Dune", "Frank Herbert", "Sci-Fi").
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Insert_Failure(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO books")).
		WillReturnError(errors.New("Error 1146: Table 'library_db.books' doesn't exist"))

	id, err := repo.Insert(ctx, book.Book{Title: "Dune"})

	require.Error(t, err)
	assert.Zero(t, id)
	assert.Contains(t, err.Error(), "inserting book")
}

func TestRepository_SelectAll(t *testing.T) {
	t.Run("rows in id order", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author, category FROM books ORDER BY id")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "category"}).
				AddRow(1, "Dune", "Frank Herbert", "Sci-Fi").
				AddRow(2, "Emma", "Jane Austen", "Classic"))

		books, err := repo.SelectAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []book.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"},
			{ID: 2, Title: "Emma", Author: "Jane Austen", Category: "Classic"},
		}, books)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author, category FROM books ORDER BY id")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "category"}))

		books, err := repo.SelectAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestRepository_Select(t *testing.T) {
	repo, mock := newMockRepository(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author, category FROM books WHERE id = ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "category"}))

	_, err := repo.Select(ctx, 5)

	assert.ErrorIs(t, err, book.ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	t.Run("matched row", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE books SET title = ?, author = ?, category = ? WHERE id = ?")).
			WithArgs("Dune Messiah", "Frank Herbert", "Sci-Fi", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, book.Book{ID: 1, Title: "Dune Messiah", Author: "Frank Herbert", Category: "Sci-Fi"})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE books SET")).
			WithArgs("t", "a", "c", 404).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, book.Book{ID: 404, Title: "t", Author: "a", Category: "c"})

		assert.ErrorIs(t, err, book.ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = ?")).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		ctx := context.Background()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books WHERE id = ?")).
			WithArgs(2).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 2), book.ErrNotFound)
	})
}
