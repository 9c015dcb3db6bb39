package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// DefaultSnapshotKey is the object key used when none is given.
const DefaultSnapshotKey = "catalog/books.json"

const snapshotVersion = 1

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type snapshotDocument struct {
	Version    int          `json:"version"`
	ExportedAt time.Time    `json:"exported_at"`
	Books      []model.Book `json:"books"`
}

// Snapshot exports the catalog to object storage and restores it from there
// or from any reader carrying the same JSON.
type Snapshot struct {
	bookStore model.BookStore
	storage   model.Storage
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewSnapshot creates the service. storage may be nil when only local
// imports are needed.
func NewSnapshot(bookStore model.BookStore, storage model.Storage, logger *logger.Logger, metrics *metrics.Metrics) *Snapshot {
	return &Snapshot{
		bookStore: bookStore,
		storage:   storage,
		logger:    logger,
		metrics:   metrics,
	}
}

// Export writes every book under key and returns how many were written.
func (s *Snapshot) Export(ctx context.Context, key string) (count int, err error) {
	defer s.observe("export", time.Now(), &err)

	if s.storage == nil {
		return 0, model.ErrStorageDisabled
	}
	if key == "" {
		key = DefaultSnapshotKey
	}

	books, err := s.bookStore.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list books: %w", err)
	}

	payload, err := json.Marshal(snapshotDocument{
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC(),
		Books:      books,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.storage.Upload(ctx, key, bytes.NewReader(payload), int64(len(payload))); err != nil {
		s.logger.Error("Snapshot service: failed to upload snapshot",
			"key", key,
			"error", err.Error())
		return 0, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Snapshot service: catalog exported",
		"key", key,
		"books", len(books))

	return len(books), nil
}

// Import restores the snapshot stored under key.
func (s *Snapshot) Import(ctx context.Context, key string) (count int, err error) {
	defer s.observe("import", time.Now(), &err)

	if s.storage == nil {
		return 0, model.ErrStorageDisabled
	}
	if key == "" {
		key = DefaultSnapshotKey
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to check snapshot: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("snapshot %q: %w", key, model.ErrNotFound)
	}

	body, err := s.storage.Download(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to download snapshot: %w", err)
	}
	defer body.Close()

	return s.Restore(ctx, body)
}

// Restore reads books from r and adds or updates each of them. r holds
// either a snapshot document or a bare JSON array of books. Nothing is
// written unless every book is valid.
func (s *Snapshot) Restore(ctx context.Context, r io.Reader) (int, error) {
	books, err := decodeBooks(r)
	if err != nil {
		return 0, err
	}

	for i, book := range books {
		if err := validateStruct(book); err != nil {
			return 0, fmt.Errorf("book #%d: %w", i, err)
		}
	}

	for _, book := range books {
		if err := s.bookStore.Save(ctx, book); err != nil {
			return 0, fmt.Errorf("failed to save book %s: %w", book.ISBN, err)
		}
	}

	s.logger.Info("Snapshot service: catalog restored",
		"books", len(books))

	return len(books), nil
}

func decodeBooks(r io.Reader) ([]model.Book, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var books []model.Book
		if err := json.Unmarshal(trimmed, &books); err != nil {
			return nil, fmt.Errorf("%w: malformed book list: %s", model.ErrValidation, err.Error())
		}
		return books, nil
	}

	var doc snapshotDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed snapshot: %s", model.ErrValidation, err.Error())
	}
	if doc.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", model.ErrValidation, doc.Version)
	}
	return doc.Books, nil
}

func (s *Snapshot) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveOperation("snapshot", operation, start, *err)
}
