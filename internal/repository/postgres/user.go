package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/bookshelf-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, password_hash, active, currently_reading, read_books, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row scanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Active,
		&user.CurrentlyReading, &user.ReadBooks, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

// isbnList keeps NOT NULL array columns from receiving a nil slice.
func isbnList(isbns []string) []string {
	if isbns == nil {
		return []string{}
	}
	return isbns
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err := rowResult(err, model.ErrUserNotFound, "get user by username"); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (r *UserRepository) Save(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (id, username, password_hash, active, currently_reading, read_books, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (username) DO UPDATE
			  SET password_hash = EXCLUDED.password_hash,
			      active = EXCLUDED.active,
			      currently_reading = EXCLUDED.currently_reading,
			      read_books = EXCLUDED.read_books,
			      updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Active,
		isbnList(user.CurrentlyReading), isbnList(user.ReadBooks), stamp(user.CreatedAt), stamp(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, password_hash, active, currently_reading, read_books, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (username) DO NOTHING
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Active,
		isbnList(user.CurrentlyReading), isbnList(user.ReadBooks), stamp(user.CreatedAt), stamp(user.UpdatedAt),
	))
	if err := rowResult(err, model.ErrUsernameAlreadyExists, "create user"); err != nil {
		return model.User{}, err
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, username string, fn func(model.User) (model.User, error)) (model.User, error) {
	var updated model.User

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		current, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1 FOR UPDATE`, username))
		if err := rowResult(err, model.ErrUserNotFound, "lock user"); err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next.Username != username {
			return fmt.Errorf("username %q cannot be changed to %q", username, next.Username)
		}

		query := `UPDATE users
				  SET password_hash = $2, active = $3, currently_reading = $4, read_books = $5, updated_at = $6
				  WHERE username = $1
				  RETURNING ` + userColumns
		updated, err = scanUser(tx.QueryRow(ctx, query,
			next.Username, next.PasswordHash, next.Active,
			isbnList(next.CurrentlyReading), isbnList(next.ReadBooks), stamp(next.UpdatedAt),
		))
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}

	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	return deleteResult(tag, err, model.ErrUserNotFound, "delete user")
}

func (r *UserRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}
