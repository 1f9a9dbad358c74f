package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/storagetest"
)

func TestRepository(t *testing.T) {
	db := storagetest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	boardroom := &domain.Room{Name: "Boardroom", Location: "3rd floor", Capacity: 12, IsActive: true}
	require.NoError(t, repo.Create(ctx, boardroom))
	require.NotZero(t, boardroom.ID)

	huddle := &domain.Room{Name: "Huddle", Capacity: 4, IsActive: false}
	require.NoError(t, repo.Create(ctx, huddle))

	assert.ErrorIs(t, repo.Create(ctx, &domain.Room{Name: "Boardroom", Capacity: 2, IsActive: true}), ErrDuplicateName)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Boardroom", active[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	huddle.Name = "Boardroom"
	assert.ErrorIs(t, repo.Update(ctx, huddle), ErrDuplicateName)

	huddle.Name = "Huddle A"
	huddle.IsActive = true
	require.NoError(t, repo.Update(ctx, huddle))

	got, err := repo.GetByID(ctx, huddle.ID)
	require.NoError(t, err)
	assert.Equal(t, "Huddle A", got.Name)
	assert.True(t, got.IsActive)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
