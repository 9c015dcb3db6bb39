package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/bookshelf-server/internal/model"
)

var _ model.BookStore = (*BookRepository)(nil)

const bookColumns = `isbn, title, author, pages`

type BookRepository struct {
	db *Connection
}

func NewBookRepository(db *Connection) *BookRepository {
	return &BookRepository{
		db: db,
	}
}

func scanBook(row scanner) (model.Book, error) {
	var book model.Book
	err := row.Scan(&book.ISBN, &book.Title, &book.Author, &book.Pages)
	return book, err
}

func (r *BookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY isbn`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		return scanBook(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}

	return books, nil
}

func (r *BookRepository) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	book, err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = $1`, isbn))
	if err := rowResult(err, model.ErrBookNotFound, "get book by isbn"); err != nil {
		return model.Book{}, err
	}

	return book, nil
}

func (r *BookRepository) Save(ctx context.Context, book model.Book) error {
	query := `INSERT INTO books (isbn, title, author, pages)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (isbn) DO UPDATE
			  SET title = EXCLUDED.title, author = EXCLUDED.author, pages = EXCLUDED.pages, updated_at = NOW()`

	if _, err := r.db.Exec(ctx, query, book.ISBN, book.Title, book.Author, book.Pages); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}

	return nil
}

func (r *BookRepository) Create(ctx context.Context, book model.Book) (model.Book, error) {
	query := `INSERT INTO books (isbn, title, author, pages)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (isbn) DO NOTHING
			  RETURNING ` + bookColumns

	saved, err := scanBook(r.db.QueryRow(ctx, query, book.ISBN, book.Title, book.Author, book.Pages))
	if err := rowResult(err, model.ErrBookAlreadyExists, "create book"); err != nil {
		return model.Book{}, err
	}

	return saved, nil
}

func (r *BookRepository) Update(ctx context.Context, isbn string, fn func(model.Book) (model.Book, error)) (model.Book, error) {
	var updated model.Book

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		current, err := scanBook(tx.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = $1 FOR UPDATE`, isbn))
		if err := rowResult(err, model.ErrBookNotFound, "lock book"); err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next.ISBN != isbn {
			return fmt.Errorf("isbn %q cannot be changed to %q", isbn, next.ISBN)
		}

		query := `UPDATE books SET title = $2, author = $3, pages = $4, updated_at = NOW()
				  WHERE isbn = $1
				  RETURNING ` + bookColumns
		updated, err = scanBook(tx.QueryRow(ctx, query, next.ISBN, next.Title, next.Author, next.Pages))
		if err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Book{}, err
	}

	return updated, nil
}

func (r *BookRepository) Delete(ctx context.Context, isbn string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	return deleteResult(tag, err, model.ErrBookNotFound, "delete book")
}

func (r *BookRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	return nil
}
