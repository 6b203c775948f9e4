package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-portal/internal/config"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	store, err := InitStore(context.Background(), cfg, "test_secret", time.Hour)
	require.NoError(t, err)
	return store, mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := setupTestStore(t)

	expected := Data{Authenticated: true, Name: "Ann", Email: "ann@x.com"}
	token, err := store.Create(context.Background(), expected)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actual, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, expected, *actual)
}

func TestGet_UnknownToken(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Get(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_TamperedSignature(t *testing.T) {
	store, _ := setupTestStore(t)

	token, err := store.Create(context.Background(), Data{Authenticated: true})
	require.NoError(t, err)

	id, _, ok := strings.Cut(token, ".")
	require.True(t, ok)

	_, err = store.Get(context.Background(), id+"."+strings.Repeat("ab", 32))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_ForeignSecret(t *testing.T) {
	store, mr := setupTestStore(t)

	other, err := InitStore(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()}, "other_secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Create(context.Background(), Data{Authenticated: true})
	require.NoError(t, err)

	_, err = store.Get(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_ExpiredSession(t *testing.T) {
	store, mr := setupTestStore(t)

	token, err := store.Create(context.Background(), Data{Authenticated: true, Email: "ann@x.com"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestGet_SlidingExpiry(t *testing.T) {
	store, mr := setupTestStore(t)

	token, err := store.Create(context.Background(), Data{Authenticated: true, Email: "ann@x.com"})
	require.NoError(t, err)

	// Каждое обращение внутри окна продлевает сессию на полный интервал.
	for range 3 {
		mr.FastForward(50 * time.Minute)
		_, err = store.Get(context.Background(), token)
		require.NoError(t, err)
	}

	mr.FastForward(50 * time.Minute)
	actual, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, actual.Authenticated)
}

func TestDestroy(t *testing.T) {
	store, _ := setupTestStore(t)

	token, err := store.Create(context.Background(), Data{Authenticated: true})
	require.NoError(t, err)

	err = store.Destroy(context.Background(), token)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)

	// Повторное удаление — не ошибка.
	err = store.Destroy(context.Background(), token)
	assert.NoError(t, err)
}

func TestCreate_NewIDPerLogin(t *testing.T) {
	store, _ := setupTestStore(t)

	token1, err := store.Create(context.Background(), Data{Authenticated: true, Email: "ann@x.com"})
	require.NoError(t, err)
	token2, err := store.Create(context.Background(), Data{Authenticated: true, Email: "ann@x.com"})
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}
