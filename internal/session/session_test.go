package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn_PersistsToken(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	sut := New(store)

	err := sut.SignIn(context.Background(), domain.User{
		Email:       "user@example.com",
		DisplayName: "User",
		Token:       "jwt-token",
	})
	require.NoError(t, err)
	assert.True(t, sut.Authenticated())
	assert.Equal(t, "jwt-token", sut.Token())

	// A fresh session over the same store restores both token and user.
	restored := New(store)
	require.NoError(t, restored.Restore(context.Background()))
	assert.Equal(t, "jwt-token", restored.Token())
	require.NotNil(t, restored.CurrentUser())
	assert.Equal(t, "user@example.com", restored.CurrentUser().Email)
}

func TestRestore_NoToken(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	sut := New(store)

	require.NoError(t, sut.Restore(context.Background()))
	assert.False(t, sut.Authenticated())
	assert.Nil(t, sut.CurrentUser())
}

func TestClear_DropsDurableState(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	sut := New(store)
	require.NoError(t, sut.SignIn(context.Background(), domain.User{Email: "a@b.c", Token: "jwt"}))

	sut.Clear()
	assert.False(t, sut.Authenticated())

	restored := New(store)
	require.NoError(t, restored.Restore(context.Background()))
	assert.False(t, restored.Authenticated())
}
