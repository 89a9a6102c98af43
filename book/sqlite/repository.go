package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/glebarez/go-sqlite" // pure Go SQLite driver, registers "sqlite"
	"github.com/marcelsud/elibrary/book"
)

type Repository struct {
	DB *sql.DB
}

// NewRepository opens the SQLite database at path. ":memory:" gives a
// throwaway database that lives as long as the repository.
func NewRepository(ctx context.Context, path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// one connection: an in-memory database is private to the connection that created it
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	return &Repository{DB: db}, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	var b book.Book
	err := r.DB.QueryRowContext(ctx, "SELECT id, title, author, category FROM books WHERE id = ?", id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, title, author, category FROM books ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}

	for rows.Next() {
		var b book.Book

		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}

		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	stmt, err := r.DB.PrepareContext(ctx, `
		insert into books (title, author, category)
		values(?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		b.Title,
		b.Author,
		b.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("executing statement: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert ID: %w", err)
	}

	return id, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	stmt, err := r.DB.PrepareContext(ctx, `
		update books set title=?, author=?, category=? where id=?
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		b.Title,
		b.Author,
		b.Category,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return affected(result)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return affected(result)
}

func (r *Repository) CreateTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS books (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  author TEXT NOT NULL,
  category TEXT NOT NULL
);`
	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB == nil {
		return nil
	}
	if err := r.DB.Close(); err != nil {
		return fmt.Errorf("closing repository: %w", err)
	}
	return nil
}

func affected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return book.ErrNotFound
	}
	return nil
}
