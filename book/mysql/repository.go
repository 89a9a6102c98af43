package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/marcelsud/elibrary/book"
)

/*
MySQL Storage Gateway

- ? placeholders
- AUTO_INCREMENT id, read back through LastInsertId
- RowsAffected counts changed rows by default, so the DSN asks for found rows
  instead: an update to identical values still reports the matched row.
*/

type Repository struct {
	DB *sql.DB
}

// DSN builds a go-sql-driver DSN for a TCP connection
func DSN(host, port, dbName, user, password string) string {
	cfg := gomysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// NewRepository opens a MySQL repository holding a single connection
func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(ctx, dsn, 1, 1, 0)
}

// NewRepositoryWithPoolConfig opens a MySQL repository with a custom pool
func NewRepositoryWithPoolConfig(ctx context.Context, dsn string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening mysql connection: %w", err)
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
		return nil, fmt.Errorf("pinging mysql: %w", err)
	}

	return &Repository{DB: db}, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	var b book.Book
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, author, category FROM books WHERE id = ?", id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Category)
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
	result, err := r.DB.ExecContext(ctx,
		"INSERT INTO books (title, author, category) VALUES (?, ?, ?)",
		b.Title, b.Author, b.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE books SET title = ?, author = ?, category = ? WHERE id = ?",
		b.Title, b.Author, b.Category, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return affected(result)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return affected(result)
}

func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

func (r *Repository) CreateTable(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS books (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			author VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

func affected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}
	return nil
}
