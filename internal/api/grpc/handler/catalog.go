package handler

import (
	"context"

	"github.com/dtroode/bookshelf-server/internal/api/grpc/rpc"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
)

type CatalogService interface {
	Add(ctx context.Context, book model.Book) (model.Book, error)
	Remove(ctx context.Context, isbn string) error
	Update(ctx context.Context, book model.Book) (model.Book, error)
	Get(ctx context.Context, isbn string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type SnapshotService interface {
	Export(ctx context.Context, key string) (int, error)
	Import(ctx context.Context, key string) (int, error)
}

var _ rpc.CatalogServer = (*Catalog)(nil)

// Catalog handles the bookshelf.Catalog service.
type Catalog struct {
	catalogService  CatalogService
	snapshotService SnapshotService
	logger          *logger.Logger
}

func NewCatalog(catalogService CatalogService, snapshotService SnapshotService, logger *logger.Logger) *Catalog {
	return &Catalog{
		catalogService:  catalogService,
		snapshotService: snapshotService,
		logger:          logger,
	}
}

func (h *Catalog) Add(ctx context.Context, req *rpc.Book) (*rpc.Book, error) {
	book, err := h.catalogService.Add(ctx, fromRPCBook(req))
	if err != nil {
		return nil, handleError(err)
	}
	return toRPCBook(book), nil
}

func (h *Catalog) Update(ctx context.Context, req *rpc.Book) (*rpc.Book, error) {
	book, err := h.catalogService.Update(ctx, fromRPCBook(req))
	if err != nil {
		return nil, handleError(err)
	}
	return toRPCBook(book), nil
}

func (h *Catalog) Remove(ctx context.Context, req *rpc.ISBNRequest) (*rpc.Empty, error) {
	if err := h.catalogService.Remove(ctx, req.ISBN); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}

func (h *Catalog) Get(ctx context.Context, req *rpc.ISBNRequest) (*rpc.Book, error) {
	book, err := h.catalogService.Get(ctx, req.ISBN)
	if err != nil {
		return nil, handleError(err)
	}
	return toRPCBook(book), nil
}

func (h *Catalog) List(ctx context.Context, _ *rpc.Empty) (*rpc.BookList, error) {
	books, err := h.catalogService.List(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	resp := &rpc.BookList{Books: make([]rpc.Book, 0, len(books))}
	for _, b := range books {
		resp.Books = append(resp.Books, *toRPCBook(b))
	}
	return resp, nil
}

func (h *Catalog) ExportSnapshot(ctx context.Context, req *rpc.SnapshotRequest) (*rpc.SnapshotResponse, error) {
	n, err := h.snapshotService.Export(ctx, req.Key)
	if err != nil {
		h.logger.Error("Catalog handler: snapshot export failed",
			"key", req.Key,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &rpc.SnapshotResponse{Key: req.Key, Books: int32(n)}, nil
}

func (h *Catalog) ImportSnapshot(ctx context.Context, req *rpc.SnapshotRequest) (*rpc.SnapshotResponse, error) {
	n, err := h.snapshotService.Import(ctx, req.Key)
	if err != nil {
		h.logger.Error("Catalog handler: snapshot import failed",
			"key", req.Key,
			"error", err.Error())
		return nil, handleError(err)
	}
	return &rpc.SnapshotResponse{Key: req.Key, Books: int32(n)}, nil
}

func fromRPCBook(b *rpc.Book) model.Book {
	return model.Book{
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
		Pages:  int(b.Pages),
	}
}

func toRPCBook(b model.Book) *rpc.Book {
	return &rpc.Book{
		ISBN:   b.ISBN,
		Title:  b.Title,
		Author: b.Author,
		Pages:  int32(b.Pages),
	}
}
