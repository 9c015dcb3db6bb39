package handler

import (
	"context"

	"github.com/dtroode/bookshelf-server/internal/api/grpc/rpc"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// AccountService defines registration and credential-gated account changes.
type AccountService interface {
	Register(ctx context.Context, username, password string) (model.Account, error)
	Login(ctx context.Context, username, password string) (model.User, error)
	DeactivateAccount(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	GetUser(ctx context.Context, username string) (model.User, error)
}

// TokenIssuer hands out access tokens to users who just logged in.
type TokenIssuer interface {
	Issue(ctx context.Context, username string) (string, error)
}

var _ rpc.AccountServer = (*Account)(nil)

// Account handles the bookshelf.Account service.
type Account struct {
	accountService AccountService
	tokenIssuer    TokenIssuer
	logger         *logger.Logger
}

func NewAccount(accountService AccountService, tokenIssuer TokenIssuer, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		tokenIssuer:    tokenIssuer,
		logger:         logger,
	}
}

func (h *Account) Register(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.AccountResponse, error) {
	account, err := h.accountService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Account handler: registration completed",
		"username", account.Username)

	return toAccountResponse(account), nil
}

// Login verifies credentials and returns an access token for the other services.
func (h *Account) Login(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.LoginResponse, error) {
	user, err := h.accountService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	token, err := h.tokenIssuer.Issue(ctx, user.Username)
	if err != nil {
		h.logger.Error("Account handler: failed to issue token",
			"username", user.Username,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.LoginResponse{
		Account:     *toAccountResponse(user.Account()),
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}

func (h *Account) Deactivate(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.Empty, error) {
	if err := h.accountService.DeactivateAccount(ctx, req.Username, req.Password); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}

func (h *Account) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.Empty, error) {
	if err := h.accountService.ChangePassword(ctx, req.Username, req.OldPassword, req.NewPassword); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}

func toAccountResponse(a model.Account) *rpc.AccountResponse {
	return &rpc.AccountResponse{
		ID:       a.ID.String(),
		Username: a.Username,
	}
}
