package book

import "fmt"

/*
 * No struct tags: storage and transport layers map Book to their own shapes.
 */

// Book is a catalog record as the business sees it.
// ID is assigned by storage and stays zero until the record is persisted.
type Book struct {
	ID       int64
	Title    string
	Author   string
	Category string
}

// String renders the book the way the catalog listing shows it
func (b Book) String() string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s, Category: %s", b.ID, b.Title, b.Author, b.Category)
}
