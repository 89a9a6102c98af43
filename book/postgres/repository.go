package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/elibrary/book"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/*
PostgreSQL Storage Gateway

Same book.Repository contract as the other drivers, with PostgreSQL syntax:
- $1, $2 placeholders instead of ?
- SERIAL instead of AUTO_INCREMENT
- INSERT ... RETURNING id instead of LastInsertId
*/

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a PostgreSQL repository holding a single connection
func NewRepository(ctx context.Context, connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(ctx, connectionString, 1, 1, 0)
}

// NewRepositoryWithPoolConfig opens a PostgreSQL repository with a custom pool.
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: how long a connection may be reused (0 = forever)
func NewRepositoryWithPoolConfig(ctx context.Context, connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Select fetches a book by ID
func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	query := "SELECT id, title, author, category FROM books WHERE id = $1"

	var b book.Book
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Category,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}

	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}

	return b, nil
}

// SelectAll returns every book
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	query := "SELECT id, title, author, category FROM books ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query)
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

// Insert stores a new book and returns the generated ID
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	query := `
		INSERT INTO books (title, author, category)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, b.Title, b.Author, b.Category).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}

	return id, nil
}

// Update rewrites title, author and category of an existing book
func (r *Repository) Update(ctx context.Context, b book.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, category = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(ctx, query, b.Title, b.Author, b.Category, b.ID)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

// Delete removes a book by ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM books WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

// Close releases the connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the books table when it is missing
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			category TEXT NOT NULL
		)
	`

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable removes the books table
func (r *Repository) DropTable(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS books CASCADE"

	_, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}
