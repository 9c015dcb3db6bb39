package middleware

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the username a bearer token was issued to.
type TokenService interface {
	GetUsername(ctx context.Context, token string) (string, error)
}

// AccountService looks up the account a token was issued to.
type AccountService interface {
	GetUser(ctx context.Context, username string) (model.User, error)
}

// Authenticate validates bearer tokens and puts the username into the context.
// A token only counts while its account exists and is active.
type Authenticate struct {
	tokenService   TokenService
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(
	tokenService TokenService,
	accountService AccountService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		tokenService:   tokenService,
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// AuthFunc is used with the go-grpc-middleware auth interceptor.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	username, err := m.authenticate(ctx, bearerToken(ctx))
	if err != nil {
		m.logger.Debug("Authenticate middleware: request rejected",
			"reason", err.Error())
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	if err := m.checkAccount(ctx, username); err != nil {
		return nil, err
	}

	return m.contextManager.SetUsernameToContext(ctx, username), nil
}

func (m *Authenticate) checkAccount(ctx context.Context, username string) error {
	user, err := m.accountService.GetUser(ctx, username)
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		m.logger.Debug("Authenticate middleware: token for unknown user",
			"username", username)
		return status.Error(codes.Unauthenticated, errInvalidToken.Error())
	case err != nil:
		m.logger.Error("Authenticate middleware: failed to get user",
			"username", username,
			"error", err.Error())
		return status.Error(codes.Internal, "internal server error")
	case !user.Active:
		m.logger.Debug("Authenticate middleware: account is inactive",
			"username", username)
		return status.Error(codes.PermissionDenied, model.ErrInactiveAccount.Error())
	}
	return nil
}

func (m *Authenticate) authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errMissingToken
	}

	username, err := m.tokenService.GetUsername(ctx, token)
	if err != nil || username == "" {
		return "", errInvalidToken
	}

	return username, nil
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return ""
	}

	token, found := strings.CutPrefix(values[0], "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
