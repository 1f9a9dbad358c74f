package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

func newStore(t *testing.T) (*LoginAttemptStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLoginAttemptStore(client, "login_attempts", 10*time.Minute), mr
}

func TestLoginAttemptStore_RoundTrip(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	last := time.Date(2025, 6, 10, 9, 30, 15, 0, time.UTC)

	_, err := store.Get(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrLoginAttemptNotFound)

	require.NoError(t, store.Insert(ctx, &domain.LoginAttempt{Address: "10.0.0.1", Attempts: 1, LastAttempt: last}))

	got, err := store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Attempts)
	assert.True(t, last.Equal(got.LastAttempt))
	assert.Equal(t, 10*time.Minute, mr.TTL("login_attempts:10.0.0.1"))

	require.NoError(t, store.Update(ctx, &domain.LoginAttempt{Address: "10.0.0.1", Attempts: 4, LastAttempt: last.Add(time.Minute)}))
	got, err = store.Get(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Attempts)

	require.NoError(t, store.Delete(ctx, "10.0.0.1"))
	_, err = store.Get(ctx, "10.0.0.1")
	assert.ErrorIs(t, err, domain.ErrLoginAttemptNotFound)

	assert.NoError(t, store.Delete(ctx, "10.0.0.1"), "deleting an absent record is not an error")
}

func TestLoginAttemptStore_Expires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.LoginAttempt{Address: "10.0.0.2", Attempts: 5, LastAttempt: time.Now()}))
	mr.FastForward(11 * time.Minute)

	_, err := store.Get(ctx, "10.0.0.2")
	assert.ErrorIs(t, err, domain.ErrLoginAttemptNotFound)
}

func TestLoginAttemptStore_Corrupted(t *testing.T) {
	store, mr := newStore(t)
	mr.HSet("login_attempts:10.0.0.3", fieldAttempts, "many", fieldLastAttempt, "0")

	_, err := store.Get(context.Background(), "10.0.0.3")
	assert.ErrorIs(t, err, ErrCorruptedRecord)
}

func TestLoginAttemptStore_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewLoginAttemptStore(client, "login_attempts", time.Minute)

	_, err = store.Get(context.Background(), "10.0.0.4")
	assert.ErrorIs(t, err, ErrRedis)
}
