package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/storagetest"
)

func TestRepository(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := storagetest.SeedUser(t, db, "user")
	now := time.Now()

	live := &domain.Session{Token: uuid.NewString(), UserID: userID, ExpiresAt: now.Add(time.Hour)}
	stale := &domain.Session{Token: uuid.NewString(), UserID: userID, ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))

	got, err := repo.GetByToken(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	require.NoError(t, repo.Delete(ctx, live.Token))
	_, err = repo.GetByToken(ctx, live.Token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
