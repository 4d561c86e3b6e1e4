package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-mobile-client/internal/ports"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

func TestStore_SetGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))

	got, err := store.Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestStore_GetAbsentKey(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.Get(context.Background(), ports.KeyToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_KeyNamespace(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyUserInfo, `{"id":"u1"}`))

	got, err := mr.Get("account:credential:USER_INFO")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, got)

	// credentials persist until logout: no TTL
	assert.Equal(t, int64(0), int64(mr.TTL("account:credential:USER_INFO")))
}

func TestStore_Remove(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ports.KeyToken, "abc"))
	require.NoError(t, store.Remove(ctx, ports.KeyToken))

	_, err := store.Get(ctx, ports.KeyToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestStore_RemoveAbsentKeyIsNoError(t *testing.T) {
	store, _ := setupStore(t)
	assert.NoError(t, store.Remove(context.Background(), ports.KeyToken))
}

func TestStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewWithPrefix(client, "test:")
	require.NoError(t, store.Set(context.Background(), ports.KeyToken, "abc"))

	got, err := mr.Get("test:TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestStore_ServerDownSurfacesError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := New(client)

	mr.Close()

	_, err := store.Get(context.Background(), ports.KeyToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNotFound)
}
