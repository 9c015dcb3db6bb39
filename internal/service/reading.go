package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// Reading moves books between a user's currently reading and read lists.
// Callers are expected to have authenticated the user already.
type Reading struct {
	userStore model.UserStore
	bookStore model.BookStore
	logger    *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewReading(
	userStore model.UserStore,
	bookStore model.BookStore,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Reading {
	return &Reading{
		userStore: userStore,
		bookStore: bookStore,
		logger:    logger,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// MarkAsRead moves isbn into the user's read list. Any book in the catalog
// qualifies, whether or not the user started it.
func (s *Reading) MarkAsRead(ctx context.Context, username, isbn string) (result model.User, err error) {
	defer s.observe("mark_as_read", time.Now(), &err)

	user, err := s.move(ctx, username, isbn, func(user model.User) model.User {
		user.CurrentlyReading = without(user.CurrentlyReading, isbn)
		user.ReadBooks = with(user.ReadBooks, isbn)
		return user
	})
	if err != nil {
		return model.User{}, s.wrap("mark as read", username, isbn, err)
	}

	s.logger.Info("Reading service: book marked as read",
		"username", username,
		"isbn", isbn)

	return user, nil
}

// StartReading moves isbn into the user's currently reading list.
func (s *Reading) StartReading(ctx context.Context, username, isbn string) (result model.User, err error) {
	defer s.observe("start_reading", time.Now(), &err)

	user, err := s.move(ctx, username, isbn, func(user model.User) model.User {
		user.ReadBooks = without(user.ReadBooks, isbn)
		user.CurrentlyReading = with(user.CurrentlyReading, isbn)
		return user
	})
	if err != nil {
		return model.User{}, s.wrap("start reading", username, isbn, err)
	}

	s.logger.Info("Reading service: book started",
		"username", username,
		"isbn", isbn)

	return user, nil
}

// move checks the user, then the book, then applies change under the user's
// lock. The book lookup stays outside Update: a store may hold a connection
// for the whole Update and must not need a second one to finish it.
func (s *Reading) move(ctx context.Context, username, isbn string, change func(model.User) model.User) (model.User, error) {
	if _, err := s.userStore.FindByUsername(ctx, username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, model.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := s.ensureBook(ctx, isbn); err != nil {
		return model.User{}, err
	}

	return s.userStore.Update(ctx, username, func(user model.User) (model.User, error) {
		user = change(user)
		user.UpdatedAt = s.now()
		return user, nil
	})
}

func (s *Reading) ensureBook(ctx context.Context, isbn string) error {
	_, err := s.bookStore.FindByISBN(ctx, isbn)
	if errors.Is(err, model.ErrBookNotFound) {
		return model.ErrBookNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return nil
}

func (s *Reading) wrap(action, username, isbn string, err error) error {
	if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrBookNotFound) {
		return err
	}
	s.logger.Error("Reading service: failed to "+action,
		"username", username,
		"isbn", isbn,
		"error", err.Error())
	return fmt.Errorf("failed to %s: %w", action, err)
}

func (s *Reading) observe(operation string, start time.Time, err *error) {
	s.metrics.ObserveOperation("reading", operation, start, *err)
}

func with(list []string, isbn string) []string {
	if slices.Contains(list, isbn) {
		return list
	}
	return append(list, isbn)
}

func without(list []string, isbn string) []string {
	return slices.DeleteFunc(list, func(v string) bool { return v == isbn })
}
