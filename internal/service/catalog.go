package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// Catalog manages the set of books users can read.
type Catalog struct {
	bookStore model.BookStore
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewCatalog(bookStore model.BookStore, logger *logger.Logger, metrics *metrics.Metrics) *Catalog {
	return &Catalog{
		bookStore: bookStore,
		logger:    logger,
		metrics:   metrics,
	}
}

// Add stores a new book. The ISBN must not be taken.
func (s *Catalog) Add(ctx context.Context, book model.Book) (result model.Book, err error) {
	defer s.observe("add", time.Now(), &err)

	if err := validateStruct(book); err != nil {
		return model.Book{}, err
	}

	created, err := s.bookStore.Create(ctx, book)
	if errors.Is(err, model.ErrBookAlreadyExists) {
		s.logger.Info("Catalog service: book already exists",
			"isbn", book.ISBN)
		return model.Book{}, model.ErrBookAlreadyExists
	}
	if err != nil {
		s.logger.Error("Catalog service: failed to create book",
			"isbn", book.ISBN,
			"error", err.Error())
		return model.Book{}, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Info("Catalog service: book added",
		"isbn", created.ISBN)

	return created, nil
}

func (s *Catalog) Remove(ctx context.Context, isbn string) (err error) {
	defer s.observe("remove", time.Now(), &err)

	err = s.bookStore.Delete(ctx, isbn)
	if errors.Is(err, model.ErrBookNotFound) {
		return model.ErrBookNotFound
	}
	if err != nil {
		s.logger.Error("Catalog service: failed to delete book",
			"isbn", isbn,
			"error", err.Error())
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.logger.Info("Catalog service: book removed",
		"isbn", isbn)

	return nil
}

// Update replaces title, author and pages of the book with the same ISBN.
func (s *Catalog) Update(ctx context.Context, book model.Book) (result model.Book, err error) {
	defer s.observe("update", time.Now(), &err)

	if err := validateStruct(book); err != nil {
		return model.Book{}, err
	}

	updated, err := s.bookStore.Update(ctx, book.ISBN, func(current model.Book) (model.Book, error) {
		current.Title = book.Title
		current.Author = book.Author
		current.Pages = book.Pages
		return current, nil
	})
	if errors.Is(err, model.ErrBookNotFound) {
		return model.Book{}, model.ErrBookNotFound
	}
	if err != nil {
		s.logger.Error("Catalog service: failed to update book",
			"isbn", book.ISBN,
			"error", err.Error())
		return model.Book{}, fmt.Errorf("failed to update book: %w", err)
	}

	s.logger.Info("Catalog service: book updated",
		"isbn", updated.ISBN)

	return updated, nil
}

func (s *Catalog) Get(ctx context.Context, isbn string) (result model.Book, err error) {
	defer s.observe("get", time.Now(), &err)

	book, err := s.bookStore.FindByISBN(ctx, isbn)
	if errors.Is(err, model.ErrBookNotFound) {
		return model.Book{}, model.ErrBookNotFound
	}
	if err != nil {
		return model.Book{}, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	return book, nil
}

func (s *Catalog) List(ctx context.Context) (result []model.Book, err error) {
	defer s.observe("list", time.Now(), &err)

	books, err := s.bookStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

func (s *Catalog) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveOperation("catalog", operation, start, *err)
}
