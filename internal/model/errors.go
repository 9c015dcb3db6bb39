package model

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors below wrap one of them so callers can match
// either the kind or the exact failure with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrInactiveAccount = errors.New("account is inactive")
	ErrValidation      = errors.New("validation failed")
)

// ErrStorageDisabled is returned by snapshot operations when no object
// storage is configured.
var ErrStorageDisabled = errors.New("snapshot storage is not configured")

var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrBookNotFound          = fmt.Errorf("book %w", ErrNotFound)
	ErrUsernameAlreadyExists = fmt.Errorf("username already exists: %w", ErrDuplicateKey)
	ErrBookAlreadyExists     = fmt.Errorf("book with this isbn already exists: %w", ErrDuplicateKey)
)
