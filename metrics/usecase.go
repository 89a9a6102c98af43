package metrics

import (
	"context"

	"github.com/marcelsud/elibrary/book"
)

// UseCase decorates a book.UseCase, counting every call by outcome
type UseCase struct {
	next     book.UseCase
	exporter *OTelExporter
}

func Instrument(next book.UseCase, exporter *OTelExporter) *UseCase {
	return &UseCase{next: next, exporter: exporter}
}

func (u *UseCase) Create(ctx context.Context, title, author, category string) (book.Book, error) {
	b, err := u.next.Create(ctx, title, author, category)
	u.exporter.Record(ctx, "create", err)
	return b, err
}

func (u *UseCase) List(ctx context.Context) ([]book.Book, error) {
	all, err := u.next.List(ctx)
	u.exporter.Record(ctx, "list", err)
	return all, err
}

func (u *UseCase) Get(ctx context.Context, id int64) (book.Book, error) {
	b, err := u.next.Get(ctx, id)
	u.exporter.Record(ctx, "get", err)
	return b, err
}

func (u *UseCase) Update(ctx context.Context, id int64, title, author, category string) error {
	err := u.next.Update(ctx, id, title, author, category)
	u.exporter.Record(ctx, "update", err)
	return err
}

func (u *UseCase) Delete(ctx context.Context, id int64) error {
	err := u.next.Delete(ctx, id)
	u.exporter.Record(ctx, "delete", err)
	return err
}
