package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-memdb"
	"github.com/marcelsud/elibrary/book"
)

const table = "books"

// Repository keeps books in a process-local go-memdb table.
// Ids come from a sequence that is never reused, like an auto-increment column.
type Repository struct {
	db *memdb.MemDB

	mu     sync.Mutex
	lastID int64
}

func NewRepository() (*Repository, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			table: {
				Name: table,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.IntFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("initializing in-memory database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, "id", id)
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	if raw == nil {
		return book.Book{}, book.ErrNotFound
	}
	return *raw.(*book.Book), nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, "id")
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}

	books := []book.Book{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		books = append(books, *obj.(*book.Book))
	}
	// the id index is not ordered numerically
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.lastID + 1

	txn := r.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(table, &b); err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	txn.Commit()

	r.lastID = b.ID
	return b.ID, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(table, "id", b.ID)
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	if existing == nil {
		return book.ErrNotFound
	}
	if err := txn.Insert(table, &b); err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	txn.Commit()
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(table, "id", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if existing == nil {
		return book.ErrNotFound
	}
	if err := txn.Delete(table, existing); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	txn.Commit()
	return nil
}

// Close is a no-op; the data goes away with the process
func (r *Repository) Close(ctx context.Context) error {
	return nil
}
