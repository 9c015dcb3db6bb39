package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookshelf-server/internal/model"
)

func TestBookRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()

	book := model.Book{ISBN: "978-0", Title: "Go", Author: "Rob", Pages: 100}
	created, err := repo.Create(ctx, book)
	require.NoError(t, err)
	assert.Equal(t, book, created)

	_, err = repo.Create(ctx, model.Book{ISBN: "978-0", Title: "Other", Author: "X", Pages: 1})
	assert.ErrorIs(t, err, model.ErrBookAlreadyExists)
	assert.ErrorIs(t, err, model.ErrDuplicateKey)

	got, err := repo.FindByISBN(ctx, "978-0")
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Title)

	_, err = repo.FindByISBN(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBookRepository_FindAllSorted(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()

	require.NoError(t, repo.Save(ctx, model.Book{ISBN: "b", Title: "B", Author: "A", Pages: 1}))
	require.NoError(t, repo.Save(ctx, model.Book{ISBN: "a", Title: "A", Author: "A", Pages: 1}))
	require.NoError(t, repo.Save(ctx, model.Book{ISBN: "a", Title: "A2", Author: "A", Pages: 2}))

	books, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "a", books[0].ISBN)
	assert.Equal(t, "A2", books[0].Title)
	assert.Equal(t, "b", books[1].ISBN)
}

func TestBookRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()
	_, err := repo.Create(ctx, model.Book{ISBN: "1", Title: "Old", Author: "A", Pages: 1})
	require.NoError(t, err)

	t.Run("applies change", func(t *testing.T) {
		updated, err := repo.Update(ctx, "1", func(b model.Book) (model.Book, error) {
			b.Title = "New"
			return b, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
	})

	t.Run("fn error keeps state", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, "1", func(b model.Book) (model.Book, error) {
			b.Title = "Lost"
			return b, boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.FindByISBN(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
	})

	t.Run("key is immutable", func(t *testing.T) {
		_, err := repo.Update(ctx, "1", func(b model.Book) (model.Book, error) {
			b.ISBN = "2"
			return b, nil
		})
		require.Error(t, err)

		_, err = repo.FindByISBN(ctx, "2")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.Update(ctx, "nope", func(b model.Book) (model.Book, error) { return b, nil })
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})
}

func TestBookRepository_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository()
	require.NoError(t, repo.Save(ctx, model.Book{ISBN: "1", Title: "T", Author: "A", Pages: 1}))
	require.NoError(t, repo.Save(ctx, model.Book{ISBN: "2", Title: "T", Author: "A", Pages: 1}))

	require.NoError(t, repo.Delete(ctx, "1"))
	assert.ErrorIs(t, repo.Delete(ctx, "1"), model.ErrBookNotFound)

	require.NoError(t, repo.Clear(ctx))
	books, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewBookRepository()
	_, err := repo.Create(ctx, model.Book{ISBN: "1"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
