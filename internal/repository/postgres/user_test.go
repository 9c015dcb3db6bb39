package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow feeds fixed values into Scan destinations of matching types.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *bool:
			*p = r.values[i].(bool)
		case *[]string:
			*p = r.values[i].([]string)
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestScanUser(t *testing.T) {
	id := uuid.New()
	now := time.Now()
	row := fakeRow{values: []any{id, "jeff", "hash", true, []string{"1"}, []string{"2"}, now, now}}

	user, err := scanUser(row)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "jeff", user.Username)
	assert.True(t, user.Active)
	assert.Equal(t, []string{"1"}, user.CurrentlyReading)
	assert.Equal(t, []string{"2"}, user.ReadBooks)

	_, err = scanUser(fakeRow{err: errors.New("boom")})
	assert.Error(t, err)
}

func TestIsbnList(t *testing.T) {
	assert.Equal(t, []string{}, isbnList(nil))
	assert.Equal(t, []string{"a"}, isbnList([]string{"a"}))
}

func TestStamp(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, fixed, stamp(fixed))
	assert.False(t, stamp(time.Time{}).IsZero())
}

func TestConnection_NilPool(t *testing.T) {
	conn := &Connection{}

	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
	assert.Error(t, conn.InTx(context.Background(), nil))
}
