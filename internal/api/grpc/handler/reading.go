package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookshelf-server/internal/api/grpc/rpc"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
)

type ReadingService interface {
	MarkAsRead(ctx context.Context, username, isbn string) (model.User, error)
	StartReading(ctx context.Context, username, isbn string) (model.User, error)
}

var _ rpc.ReadingServer = (*Reading)(nil)

// Reading handles the bookshelf.Reading service. The user is always the one
// the bearer token was issued to.
type Reading struct {
	readingService ReadingService
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewReading(
	readingService ReadingService,
	accountService AccountService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Reading {
	return &Reading{
		readingService: readingService,
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Reading) MarkAsRead(ctx context.Context, req *rpc.ISBNRequest) (*rpc.Progress, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.readingService.MarkAsRead(ctx, username, req.ISBN)
	if err != nil {
		return nil, handleError(err)
	}
	return toProgress(user), nil
}

func (h *Reading) StartReading(ctx context.Context, req *rpc.ISBNRequest) (*rpc.Progress, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.readingService.StartReading(ctx, username, req.ISBN)
	if err != nil {
		return nil, handleError(err)
	}
	return toProgress(user), nil
}

func (h *Reading) Progress(ctx context.Context, _ *rpc.Empty) (*rpc.Progress, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.accountService.GetUser(ctx, username)
	if err != nil {
		return nil, handleError(err)
	}
	return toProgress(user), nil
}

func (h *Reading) username(ctx context.Context) (string, error) {
	username, ok := h.contextManager.GetUsernameFromContext(ctx)
	if !ok {
		h.logger.Warn("Reading handler: username missing from context")
		return "", status.Error(codes.Unauthenticated, "user is not authenticated")
	}
	return username, nil
}

func toProgress(u model.User) *rpc.Progress {
	return &rpc.Progress{
		Username:         u.Username,
		Active:           u.Active,
		CurrentlyReading: nonNil(u.CurrentlyReading),
		ReadBooks:        nonNil(u.ReadBooks),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
