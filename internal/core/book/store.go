package book

import "context"

type Repository interface {
	// CreateBook inserts the book and bumps the author's total_books counter
	// in the same transaction.
	CreateBook(context context.Context, b *Book) error
	GetBook(context context.Context, id string) (*Book, error)
	// TitleExists reports whether the author already has a book with the
	// given title. excludeID skips one book, for update-time checks.
	TitleExists(context context.Context, authorID, title, excludeID string) (bool, error)
	UpdateBook(context context.Context, b *Book) error
	// DeleteBook removes the book (reading progress rows cascade) and
	// decrements the author's total_books counter, floored at zero, in the
	// same transaction.
	DeleteBook(context context.Context, id, authorID string) error
	ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error)
}
