package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/elibrary/book"
)

// Handlers wires the book routes. metrics may be nil.
func Handlers(bookService book.UseCase, metrics http.Handler) *chi.Mux {
	logger := httplog.NewLogger("elibrary", httplog.Options{
		JSON: true,
	})
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Method(http.MethodGet, "/v1/books", getBooks(bookService))
	r.Method(http.MethodGet, "/v1/books/{id}", getBook(bookService))
	r.Method(http.MethodPost, "/v1/books", postBooks(bookService))
	r.Method(http.MethodPut, "/v1/books/{id}", putBook(bookService))
	r.Method(http.MethodDelete, "/v1/books/{id}", deleteBook(bookService))
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}
