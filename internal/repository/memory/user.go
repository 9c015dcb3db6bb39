package memory

import (
	"context"

	"github.com/dtroode/bookshelf-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository keeps accounts in process memory.
type UserRepository struct {
	users *table[model.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: newTable(
			func(u model.User) string { return u.Username },
			model.User.Clone,
			model.ErrUserNotFound,
			model.ErrUsernameAlreadyExists,
		),
	}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return r.users.all(ctx)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.users.get(ctx, username)
}

func (r *UserRepository) Save(ctx context.Context, user model.User) error {
	return r.users.put(ctx, user)
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	return r.users.create(ctx, user)
}

func (r *UserRepository) Update(ctx context.Context, username string, fn func(model.User) (model.User, error)) (model.User, error) {
	return r.users.update(ctx, username, fn)
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	return r.users.remove(ctx, username)
}

func (r *UserRepository) Clear(ctx context.Context) error {
	return r.users.clear(ctx)
}
