package model

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
// Implementations must make every call atomic per username.
type UserStore interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	// Save inserts the user or overwrites the one with the same username.
	Save(ctx context.Context, user User) error
	// Create inserts the user and fails with ErrUsernameAlreadyExists on collision.
	Create(ctx context.Context, user User) (User, error)
	// Update runs fn against the current record and stores its result while
	// holding the username. An error from fn aborts without persisting anything.
	Update(ctx context.Context, username string, fn func(User) (User, error)) (User, error)
	Delete(ctx context.Context, username string) error
	// Clear removes every user. Maintenance only.
	Clear(ctx context.Context) error
}

// User represents an account with its reading progress.
type User struct {
	ID               uuid.UUID
	Username         string
	PasswordHash     string
	Active           bool
	CurrentlyReading []string
	ReadBooks        []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.CurrentlyReading = slices.Clone(u.CurrentlyReading)
	u.ReadBooks = slices.Clone(u.ReadBooks)
	return u
}

// Account is the identity handed back to callers after registration.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Account returns the public identity of the user.
func (u User) Account() Account {
	return Account{ID: u.ID, Username: u.Username}
}

// Credentials is a username/password pair as supplied by a caller.
type Credentials struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,password_bytes"`
}

// CredentialVerifier encodes secrets and checks candidates against them.
type CredentialVerifier interface {
	Encode(plaintext string) (string, error)
	Matches(plaintext, encoded string) bool
}
