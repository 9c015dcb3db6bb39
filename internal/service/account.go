package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// Account registers users and guards every account change behind a
// credential check. The check and the change run inside one store Update,
// so a concurrent password change cannot slip between them.
type Account struct {
	userStore model.UserStore
	verifier  model.CredentialVerifier
	logger    *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewAccount(
	userStore model.UserStore,
	verifier model.CredentialVerifier,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Account {
	return &Account{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Account) Register(ctx context.Context, username, password string) (result model.Account, err error) {
	defer s.observe("register", time.Now(), &err)

	s.logger.Debug("Account service: starting user registration",
		"username", username)

	if err := validateStruct(model.Credentials{Username: username, Password: password}); err != nil {
		return model.Account{}, err
	}

	hash, err := s.verifier.Encode(password)
	if err != nil {
		s.logger.Error("Account service: failed to encode password",
			"username", username,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to encode password: %w", err)
	}

	now := s.now()
	user, err := s.userStore.Create(ctx, model.User{
		ID:               uuid.New(),
		Username:         username,
		PasswordHash:     hash,
		Active:           true,
		CurrentlyReading: []string{},
		ReadBooks:        []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if errors.Is(err, model.ErrUsernameAlreadyExists) {
		s.logger.Info("Account service: username already exists",
			"username", username)
		return model.Account{}, model.ErrUsernameAlreadyExists
	}
	if err != nil {
		s.logger.Error("Account service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Account service: user registered",
		"username", username,
		"user_id", user.ID)

	return user.Account(), nil
}

// Login verifies the credentials and returns the user. Nothing is changed.
func (s *Account) Login(ctx context.Context, username, password string) (result model.User, err error) {
	defer s.observe("login", time.Now(), &err)

	user, err := s.userStore.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		s.logger.Error("Account service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := s.verify(user, password); err != nil {
		s.logger.Info("Account service: login rejected",
			"username", username,
			"reason", err.Error())
		return model.User{}, err
	}

	return user, nil
}

func (s *Account) DeactivateAccount(ctx context.Context, username, password string) (err error) {
	defer s.observe("deactivate", time.Now(), &err)

	_, err = s.userStore.Update(ctx, username, func(user model.User) (model.User, error) {
		if err := s.verify(user, password); err != nil {
			return model.User{}, err
		}
		user.Active = false
		user.UpdatedAt = s.now()
		return user, nil
	})
	if err != nil {
		return s.gateError("deactivate account", username, err)
	}

	s.logger.Info("Account service: account deactivated",
		"username", username)

	return nil
}

func (s *Account) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (err error) {
	defer s.observe("change_password", time.Now(), &err)

	_, err = s.userStore.Update(ctx, username, func(user model.User) (model.User, error) {
		if err := s.verify(user, oldPassword); err != nil {
			return model.User{}, err
		}
		if err := validateStruct(model.Credentials{Username: username, Password: newPassword}); err != nil {
			return model.User{}, err
		}

		hash, err := s.verifier.Encode(newPassword)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to encode password: %w", err)
		}
		user.PasswordHash = hash
		user.UpdatedAt = s.now()
		return user, nil
	})
	if err != nil {
		return s.gateError("change password", username, err)
	}

	s.logger.Info("Account service: password changed",
		"username", username)

	return nil
}

func (s *Account) GetUser(ctx context.Context, username string) (result model.User, err error) {
	defer s.observe("get_user", time.Now(), &err)

	user, err := s.userStore.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// verify applies the credential check before the activity check.
func (s *Account) verify(user model.User, password string) error {
	if !s.verifier.Matches(password, user.PasswordHash) {
		return model.ErrBadCredentials
	}
	if !user.Active {
		return model.ErrInactiveAccount
	}
	return nil
}

// gateError passes domain errors through and wraps the rest.
func (s *Account) gateError(action, username string, err error) error {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrBadCredentials),
		errors.Is(err, model.ErrInactiveAccount),
		errors.Is(err, model.ErrValidation):
		s.logger.Info("Account service: request rejected",
			"action", action,
			"username", username,
			"reason", err.Error())
		return err
	default:
		s.logger.Error("Account service: failed to "+action,
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func (s *Account) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveOperation("account", operation, start, *err)
}
