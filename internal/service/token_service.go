package service

import (
	"context"
	"fmt"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// TokenService issues access tokens after a successful login and resolves
// them back to usernames. Tokens are not persisted.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, username string) (string, error) {
	access, err := s.manager.GenerateAccessToken(username)
	if err != nil {
		s.logger.Error("Token service: failed to issue access token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("issue access: %w", err)
	}

	return access, nil
}

func (s *TokenService) GetUsername(ctx context.Context, token string) (string, error) {
	return s.manager.ParseAccessToken(token)
}
