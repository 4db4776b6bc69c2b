package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizbot/internal/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewSessionStore(client), mr
}

func TestSessionStore_SetGet(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "42", "Вопрос: 2+2?"))

	// Keys are namespaced per user
	assert.True(t, mr.Exists("quiz:session:42"))

	question, err := store.Get(ctx, "42")
	assert.NoError(t, err)
	assert.Equal(t, "Вопрос: 2+2?", question)
}

func TestSessionStore_GetAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionStore_Delete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "42", "вопрос"))
	require.NoError(t, store.Delete(ctx, "42"))

	assert.False(t, mr.Exists("quiz:session:42"))
	_, err := store.Get(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionStore_Unavailable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	err := store.Set(ctx, "42", "вопрос")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = store.Delete(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
