package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// table is a map of value snapshots keyed by a field of the record.
// Writers to the same key are serialized by keys; mu only guards the map.
type table[T any] struct {
	keys *keyLock
	mu   sync.RWMutex
	rows map[string]T

	keyOf     func(T) string
	clone     func(T) T
	notFound  error
	duplicate error
}

func newTable[T any](keyOf func(T) string, clone func(T) T, notFound, duplicate error) *table[T] {
	return &table[T]{
		keys:      newKeyLock(),
		rows:      make(map[string]T),
		keyOf:     keyOf,
		clone:     clone,
		notFound:  notFound,
		duplicate: duplicate,
	}
}

func (t *table[T]) all(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, t.clone(t.rows[k]))
	}
	return out, nil
}

func (t *table[T]) get(ctx context.Context, key string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[key]
	if !ok {
		return zero, t.notFound
	}
	return t.clone(row), nil
}

func (t *table[T]) put(ctx context.Context, row T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := t.keyOf(row)
	unlock := t.keys.lock(key)
	defer unlock()

	t.write(key, row)
	return nil
}

func (t *table[T]) create(ctx context.Context, row T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	key := t.keyOf(row)
	unlock := t.keys.lock(key)
	defer unlock()

	t.mu.RLock()
	_, exists := t.rows[key]
	t.mu.RUnlock()
	if exists {
		return zero, t.duplicate
	}

	t.write(key, row)
	return t.clone(row), nil
}

func (t *table[T]) update(ctx context.Context, key string, fn func(T) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	unlock := t.keys.lock(key)
	defer unlock()

	t.mu.RLock()
	current, ok := t.rows[key]
	t.mu.RUnlock()
	if !ok {
		return zero, t.notFound
	}

	next, err := fn(t.clone(current))
	if err != nil {
		return zero, err
	}
	if t.keyOf(next) != key {
		return zero, fmt.Errorf("key %q cannot be changed to %q", key, t.keyOf(next))
	}

	t.write(key, next)
	return t.clone(next), nil
}

func (t *table[T]) remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := t.keys.lock(key)
	defer unlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[key]; !ok {
		return t.notFound
	}
	delete(t.rows, key)
	return nil
}

func (t *table[T]) clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = make(map[string]T)
	return nil
}

func (t *table[T]) write(key string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[key] = t.clone(row)
}
