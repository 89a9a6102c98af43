package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelsud/elibrary/book"
	"github.com/marcelsud/elibrary/book/memory"
	"github.com/matryer/is"
)

var ctx context.Context = context.Background()

func newStore(t *testing.T) *memory.Repository {
	t.Helper()
	store, err := memory.NewRepository()
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestInsertAndSelectAll(t *testing.T) {
	store := newStore(t)

	t.Run("empty table yields an empty slice", func(t *testing.T) {
		is := is.New(t)
		all, err := store.SelectAll(ctx)
		is.NoErr(err)
		is.True(all != nil)
		is.Equal(len(all), 0)
	})

	t.Run("inserted book comes back with a fresh id", func(t *testing.T) {
		is := is.New(t)
		id, err := store.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"})
		is.NoErr(err)
		is.Equal(id, int64(1))

		all, err := store.SelectAll(ctx)
		is.NoErr(err)
		is.Equal(all, []book.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"}})
	})

	t.Run("listing is ordered by id", func(t *testing.T) {
		is := is.New(t)
		for _, title := range []string{"b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
			_, err := store.Insert(ctx, book.Book{Title: title})
			is.NoErr(err)
		}
		all, err := store.SelectAll(ctx)
		is.NoErr(err)
		is.Equal(len(all), 12)
		for i, b := range all {
			is.Equal(b.ID, int64(i+1))
		}
	})
}

func TestUpdate(t *testing.T) {
	store := newStore(t)
	id, err := store.Insert(ctx, book.Book{Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("changes the stored record", func(t *testing.T) {
		is := is.New(t)
		err := store.Update(ctx, book.Book{ID: id, Title: "Dune Messiah", Author: "Frank Herbert", Category: "Sci-Fi"})
		is.NoErr(err)
		saved, err := store.Select(ctx, id)
		is.NoErr(err)
		is.Equal(saved.Title, "Dune Messiah")
		is.Equal(saved.Author, "Frank Herbert")
	})

	t.Run("same values succeed", func(t *testing.T) {
		is := is.New(t)
		before, err := store.Select(ctx, id)
		is.NoErr(err)
		is.NoErr(store.Update(ctx, before))
		after, err := store.Select(ctx, id)
		is.NoErr(err)
		is.Equal(before, after)
	})

	t.Run("missing id returns a not found error", func(t *testing.T) {
		is := is.New(t)
		err := store.Update(ctx, book.Book{ID: 404, Title: "x"})
		is.True(errors.Is(err, book.ErrNotFound))
		all, err := store.SelectAll(ctx)
		is.NoErr(err)
		is.Equal(len(all), 1)
	})
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	first, _ := store.Insert(ctx, book.Book{Title: "Dune"})
	second, _ := store.Insert(ctx, book.Book{Title: "Emma"})

	t.Run("removes exactly that record", func(t *testing.T) {
		is := is.New(t)
		is.NoErr(store.Delete(ctx, first))
		all, err := store.SelectAll(ctx)
		is.NoErr(err)
		is.Equal(len(all), 1)
		is.Equal(all[0].ID, second)
	})

	t.Run("missing id returns a not found error", func(t *testing.T) {
		is := is.New(t)
		err := store.Delete(ctx, first)
		is.True(errors.Is(err, book.ErrNotFound))
		all, _ := store.SelectAll(ctx)
		is.Equal(len(all), 1)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		is := is.New(t)
		id, err := store.Insert(ctx, book.Book{Title: "Persuasion"})
		is.NoErr(err)
		is.Equal(id, second+1)
	})
}
