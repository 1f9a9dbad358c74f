package user

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

	hasAdmin, err := repo.HasAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, hasAdmin)

	admin := &domain.User{Email: " Admin@Example.com ", Name: "Admin", PasswordHash: "hash", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, admin))
	assert.Equal(t, "admin@example.com", admin.Email)

	assert.ErrorIs(t, repo.Create(ctx, &domain.User{Email: "ADMIN@example.com", Name: "Dup", PasswordHash: "h", Role: domain.RoleUser}), ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "ADMIN@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.True(t, got.IsAdmin())

	hasAdmin, err = repo.HasAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, hasAdmin)

	_, err = repo.GetByID(ctx, 424242)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
