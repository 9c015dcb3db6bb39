package memory

import (
	"context"

	"github.com/dtroode/bookshelf-server/internal/model"
)

var _ model.BookStore = (*BookRepository)(nil)

// BookRepository keeps the catalog in process memory.
type BookRepository struct {
	books *table[model.Book]
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: newTable(
			func(b model.Book) string { return b.ISBN },
			func(b model.Book) model.Book { return b },
			model.ErrBookNotFound,
			model.ErrBookAlreadyExists,
		),
	}
}

func (r *BookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	return r.books.all(ctx)
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	return r.books.get(ctx, isbn)
}

func (r *BookRepository) Save(ctx context.Context, book model.Book) error {
	return r.books.put(ctx, book)
}

func (r *BookRepository) Create(ctx context.Context, book model.Book) (model.Book, error) {
	return r.books.create(ctx, book)
}

func (r *BookRepository) Update(ctx context.Context, isbn string, fn func(model.Book) (model.Book, error)) (model.Book, error) {
	return r.books.update(ctx, isbn, fn)
}

func (r *BookRepository) Delete(ctx context.Context, isbn string) error {
	return r.books.remove(ctx, isbn)
}

func (r *BookRepository) Clear(ctx context.Context) error {
	return r.books.clear(ctx)
}
