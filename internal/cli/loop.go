package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcelsud/elibrary/book"
	"github.com/rs/zerolog"
)

/* Loop is the interactive front end of the catalog.
 * One state, waiting for a menu choice; each choice runs to completion before the next prompt.
 */
type Loop struct {
	reader *bufio.Reader
	out    io.Writer
	books  book.UseCase
	logger zerolog.Logger
}

type Option func(*Loop)

func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

func NewLoop(in io.Reader, out io.Writer, books book.UseCase, opts ...Option) *Loop {
	l := &Loop{
		reader: bufio.NewReader(in),
		out:    out,
		books:  books,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run prompts until the operator exits or the input ends.
// Only a failure to read the input is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	l.println("Welcome to the E-Library CLI!")

	for {
		if ctx.Err() != nil {
			return nil
		}
		l.printMenu()

		choice, err := l.readLine()
		if errors.Is(err, io.EOF) {
			l.println()
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			l.displayBooks(ctx)
		case "2":
			err = l.addBook(ctx)
		case "3":
			err = l.updateBook(ctx)
		case "4":
			err = l.deleteBook(ctx)
		case "5":
			l.println("Exiting the E-Library. Goodbye!")
			return nil
		default:
			l.logger.Debug().Str("choice", choice).Msg("invalid menu choice")
			l.println("Invalid option. Please choose a valid number from the menu.")
		}

		if errors.Is(err, io.EOF) {
			l.println()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (l *Loop) printMenu() {
	l.println()
	l.println("E-Library Menu:")
	l.println("1. View all books")
	l.println("2. Add a new book")
	l.println("3. Update a book")
	l.println("4. Delete a book")
	l.println("5. Exit")
	fmt.Fprint(l.out, "Please enter your choice: ")
}

func (l *Loop) displayBooks(ctx context.Context) {
	books, err := l.books.List(ctx)
	if err != nil {
		l.println("Failed to load books:", err)
		return
	}
	if len(books) == 0 {
		l.println("No books available.")
		return
	}
	l.println("Books available in the library:")
	for _, b := range books {
		l.println(b)
	}
}

func (l *Loop) addBook(ctx context.Context) error {
	title, author, category, err := l.readFields("Enter title: ", "Enter author: ", "Enter category: ")
	if err != nil {
		return err
	}

	if _, err := l.books.Create(ctx, title, author, category); err != nil {
		l.println("Failed to add book.")
		return nil
	}
	l.println("Book added successfully.")
	return nil
}

func (l *Loop) updateBook(ctx context.Context) error {
	id, ok, err := l.readID("Enter the ID of the book to update: ")
	if err != nil || !ok {
		return err
	}
	title, author, category, err := l.readFields("Enter new title: ", "Enter new author: ", "Enter new category: ")
	if err != nil {
		return err
	}

	err = l.books.Update(ctx, id, title, author, category)
	if err != nil {
		l.reportMissing(err, id)
		l.println("Failed to update book.")
		return nil
	}
	l.println("Book updated successfully.")
	return nil
}

func (l *Loop) deleteBook(ctx context.Context) error {
	id, ok, err := l.readID("Enter the ID of the book to delete: ")
	if err != nil || !ok {
		return err
	}

	err = l.books.Delete(ctx, id)
	if err != nil {
		l.reportMissing(err, id)
		l.println("Failed to delete book.")
		return nil
	}
	l.println("Book deleted successfully.")
	return nil
}

func (l *Loop) reportMissing(err error, id int64) {
	if errors.Is(err, book.ErrNotFound) {
		l.println(fmt.Sprintf("No book found with ID %d.", id))
	}
}

// readID reports ok=false after telling the operator the input was not a number
func (l *Loop) readID(label string) (int64, bool, error) {
	raw, err := l.prompt(label)
	if err != nil {
		return 0, false, err
	}
	text := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.println(fmt.Sprintf("Invalid ID %q: please enter a number.", text))
		return 0, false, nil
	}
	return id, true, nil
}

func (l *Loop) readFields(titleLabel, authorLabel, categoryLabel string) (title, author, category string, err error) {
	if title, err = l.prompt(titleLabel); err != nil {
		return
	}
	if author, err = l.prompt(authorLabel); err != nil {
		return
	}
	category, err = l.prompt(categoryLabel)
	return
}

func (l *Loop) prompt(label string) (string, error) {
	fmt.Fprint(l.out, label)
	return l.readLine()
}

// readLine returns io.EOF once the input is exhausted.
// Lines have no length limit and a last line without a newline still counts.
func (l *Loop) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if line == "" {
			return "", io.EOF
		}
		err = nil
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *Loop) println(a ...any) {
	fmt.Fprintln(l.out, a...)
}
