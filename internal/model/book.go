package model

import "context"

// BookStore defines persistence operations for the book catalog.
// Implementations must make every call atomic per ISBN.
type BookStore interface {
	FindAll(ctx context.Context) ([]Book, error)
	FindByISBN(ctx context.Context, isbn string) (Book, error)
	// Save inserts the book or overwrites the one with the same ISBN.
	Save(ctx context.Context, book Book) error
	// Create inserts the book and fails with ErrBookAlreadyExists on collision.
	Create(ctx context.Context, book Book) (Book, error)
	// Update runs fn against the current record and stores its result while
	// holding the ISBN. An error from fn aborts without persisting anything.
	Update(ctx context.Context, isbn string, fn func(Book) (Book, error)) (Book, error)
	Delete(ctx context.Context, isbn string) error
	// Clear removes every book. Maintenance only.
	Clear(ctx context.Context) error
}

// Book is a catalog entry.
type Book struct {
	ISBN   string `json:"isbn" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Pages  int    `json:"pages" validate:"gt=0"`
}
