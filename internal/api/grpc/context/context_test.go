package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetUsername(t *testing.T) {
	m := NewManager()
	ctx := m.SetUsernameToContext(stdctx.Background(), "jeff")

	got, ok := m.GetUsernameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "jeff", got)
}

func TestManager_GetUsername_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetUsernameFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetUsername_Empty(t *testing.T) {
	m := NewManager()
	ctx := m.SetUsernameToContext(stdctx.Background(), "")
	_, ok := m.GetUsernameFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_IgnoresIncomingMetadata(t *testing.T) {
	m := NewManager()
	md := metadata.New(map[string]string{"username": "mallory"})
	ctx := metadata.NewIncomingContext(stdctx.Background(), md)

	_, ok := m.GetUsernameFromContext(ctx)
	assert.False(t, ok)
}
