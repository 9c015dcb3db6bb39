package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookshelf-server/internal/mocks"
	"github.com/dtroode/bookshelf-server/internal/model"
	"github.com/dtroode/bookshelf-server/internal/testutil"
)

func TestAccount_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	acc, err := f.account.Register(ctx, "jeff", "Spring123!")
	require.NoError(t, err)
	assert.Equal(t, "jeff", acc.Username)
	assert.NotEqual(t, uuid.Nil, acc.ID)

	user, err := f.account.GetUser(ctx, "jeff")
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.Empty(t, user.CurrentlyReading)
	assert.Empty(t, user.ReadBooks)
	assert.NotEqual(t, "Spring123!", user.PasswordHash)
	assert.Equal(t, acc.ID, user.ID)

	_, err = f.account.Register(ctx, "jeff", "other")
	assert.ErrorIs(t, err, model.ErrUsernameAlreadyExists)
}

func TestAccount_Register_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.account.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.account.Register(context.Background(), "jeff", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestAccount_PasswordByteLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// 40 runes, 80 bytes.
	wide := strings.Repeat("é", 40)

	_, err := f.account.Register(ctx, "jeff", wide)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = f.account.GetUser(ctx, "jeff")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = f.account.Register(ctx, "jeff", strings.Repeat("é", 36))
	require.NoError(t, err)

	assert.ErrorIs(t, f.account.ChangePassword(ctx, "jeff", strings.Repeat("é", 36), wide), model.ErrValidation)

	_, err = f.account.Login(ctx, "jeff", strings.Repeat("é", 36))
	assert.NoError(t, err)
}

func TestAccount_Register_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const workers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.account.Register(ctx, "racer", "pw")
			if err == nil {
				wins.Add(1)
				return
			}
			assert.ErrorIs(t, err, model.ErrUsernameAlreadyExists)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestAccount_Login_Precedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.account.Register(ctx, "active", "right")
	require.NoError(t, err)
	_, err = f.account.Register(ctx, "sleeper", "right")
	require.NoError(t, err)
	require.NoError(t, f.account.DeactivateAccount(ctx, "sleeper", "right"))

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "unknown user with wrong password", username: "ghost", password: "wrong", wantErr: model.ErrUserNotFound},
		{name: "wrong password", username: "active", password: "wrong", wantErr: model.ErrBadCredentials},
		{name: "inactive with wrong password", username: "sleeper", password: "wrong", wantErr: model.ErrBadCredentials},
		{name: "inactive with right password", username: "sleeper", password: "right", wantErr: model.ErrInactiveAccount},
		{name: "success", username: "active", password: "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := f.account.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
		})
	}
}

func TestAccount_DeactivateAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.account.DeactivateAccount(ctx, "ghost", "pw"), model.ErrUserNotFound)

	_, err := f.account.Register(ctx, "jeff", "pw")
	require.NoError(t, err)

	assert.ErrorIs(t, f.account.DeactivateAccount(ctx, "jeff", "wrong"), model.ErrBadCredentials)
	user, err := f.account.GetUser(ctx, "jeff")
	require.NoError(t, err)
	assert.True(t, user.Active)

	require.NoError(t, f.account.DeactivateAccount(ctx, "jeff", "pw"))
	assert.ErrorIs(t, f.account.DeactivateAccount(ctx, "jeff", "pw"), model.ErrInactiveAccount)

	_, err = f.account.Login(ctx, "jeff", "pw")
	assert.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestAccount_ChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.account.ChangePassword(ctx, "ghost", "old", "new"), model.ErrUserNotFound)

	_, err := f.account.Register(ctx, "jeff", "old")
	require.NoError(t, err)

	assert.ErrorIs(t, f.account.ChangePassword(ctx, "jeff", "wrong", "new"), model.ErrBadCredentials)
	assert.ErrorIs(t, f.account.ChangePassword(ctx, "jeff", "old", ""), model.ErrValidation)

	require.NoError(t, f.account.ChangePassword(ctx, "jeff", "old", "new"))

	_, err = f.account.Login(ctx, "jeff", "old")
	assert.ErrorIs(t, err, model.ErrBadCredentials)

	user, err := f.account.Login(ctx, "jeff", "new")
	require.NoError(t, err)
	assert.Equal(t, "jeff", user.Username)
}

func TestAccount_ChangePassword_Inactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.account.Register(ctx, "jeff", "old")
	require.NoError(t, err)
	require.NoError(t, f.account.DeactivateAccount(ctx, "jeff", "old"))

	assert.ErrorIs(t, f.account.ChangePassword(ctx, "jeff", "old", "new"), model.ErrInactiveAccount)

	_, err = f.account.Login(ctx, "jeff", "new")
	assert.ErrorIs(t, err, model.ErrBadCredentials)
}

// Racing a deactivation against a password change must never let both
// verify against the original hash.
func TestAccount_DeactivateRacesChangePassword(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		f := newFixture(t)
		_, err := f.account.Register(ctx, "jeff", "old")
		require.NoError(t, err)

		var deactivateErr, changeErr error
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			deactivateErr = f.account.DeactivateAccount(ctx, "jeff", "old")
		}()
		go func() {
			defer wg.Done()
			changeErr = f.account.ChangePassword(ctx, "jeff", "old", "new")
		}()
		wg.Wait()

		if deactivateErr == nil {
			assert.ErrorIs(t, changeErr, model.ErrInactiveAccount)
		} else {
			require.NoError(t, changeErr)
			assert.ErrorIs(t, deactivateErr, model.ErrBadCredentials)
		}
	}
}

func TestAccount_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.account.Register(ctx, "jeff", "Spring123!")
	require.NoError(t, err)

	_, err = f.account.Login(ctx, "jeff", "Spring123!")
	require.NoError(t, err)

	_, err = f.account.Login(ctx, "jeff", "wrong")
	require.ErrorIs(t, err, model.ErrBadCredentials)

	require.NoError(t, f.account.DeactivateAccount(ctx, "jeff", "Spring123!"))

	_, err = f.account.Login(ctx, "jeff", "Spring123!")
	require.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestAccount_StoreErrors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("database error")

	tests := []struct {
		name      string
		mockSetup func(*mocks.UserStore, *mocks.CredentialVerifier)
		call      func(*Account) error
		wantMsg   string
	}{
		{
			name: "register encode fails",
			mockSetup: func(_ *mocks.UserStore, v *mocks.CredentialVerifier) {
				v.On("Encode", "pw").Return("", dbErr).Once()
			},
			call: func(a *Account) error {
				_, err := a.Register(ctx, "jeff", "pw")
				return err
			},
			wantMsg: "failed to encode password",
		},
		{
			name: "register create fails",
			mockSetup: func(s *mocks.UserStore, v *mocks.CredentialVerifier) {
				v.On("Encode", "pw").Return("hash", nil).Once()
				s.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
					return u.Username == "jeff" && u.PasswordHash == "hash" && u.Active
				})).Return(model.User{}, dbErr).Once()
			},
			call: func(a *Account) error {
				_, err := a.Register(ctx, "jeff", "pw")
				return err
			},
			wantMsg: "failed to create user",
		},
		{
			name: "login lookup fails",
			mockSetup: func(s *mocks.UserStore, _ *mocks.CredentialVerifier) {
				s.On("FindByUsername", mock.Anything, "jeff").Return(model.User{}, dbErr).Once()
			},
			call: func(a *Account) error {
				_, err := a.Login(ctx, "jeff", "pw")
				return err
			},
			wantMsg: "failed to get user by username",
		},
		{
			name: "deactivate update fails",
			mockSetup: func(s *mocks.UserStore, _ *mocks.CredentialVerifier) {
				s.On("Update", mock.Anything, "jeff", mock.Anything).Return(model.User{}, dbErr).Once()
			},
			call: func(a *Account) error {
				return a.DeactivateAccount(ctx, "jeff", "pw")
			},
			wantMsg: "failed to deactivate account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewUserStore(t)
			verifier := mocks.NewCredentialVerifier(t)
			tt.mockSetup(store, verifier)

			svc := NewAccount(store, verifier, testutil.MakeNoopLogger(), nil)

			err := tt.call(svc)
			require.Error(t, err)
			assert.ErrorIs(t, err, dbErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAccount_ChangePassword_EncodesInsideUpdate(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewUserStore(t)
	verifier := mocks.NewCredentialVerifier(t)

	current := model.User{Username: "jeff", PasswordHash: "old-hash", Active: true}
	var saved model.User
	store.On("Update", mock.Anything, "jeff", mock.Anything).
		Return(func(_ context.Context, _ string, fn func(model.User) (model.User, error)) (model.User, error) {
			next, err := fn(current)
			if err == nil {
				saved = next
			}
			return next, err
		}).Once()
	verifier.On("Matches", "old", "old-hash").Return(true).Once()
	verifier.On("Encode", "new").Return("new-hash", nil).Once()

	svc := NewAccount(store, verifier, testutil.MakeNoopLogger(), nil)

	require.NoError(t, svc.ChangePassword(ctx, "jeff", "old", "new"))
	assert.Equal(t, "new-hash", saved.PasswordHash)
	assert.False(t, saved.UpdatedAt.IsZero())
}
