package rooms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	if args.Error(0) == nil {
		room.ID = 10
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Room, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

var (
	member = domain.Actor{UserID: 7, Role: domain.RoleUser}
	admin  = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
)

func TestService_List_InactiveOnlyForAdmin(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, logger.Nop())

	active := []*domain.Room{{ID: 1, Name: "Aurora", Capacity: 8, IsActive: true}}
	all := append(active, &domain.Room{ID: 2, Name: "Basement", Capacity: 4})

	repo.On("List", mock.Anything, false).Return(active, nil)
	repo.On("List", mock.Anything, true).Return(all, nil)

	resp, err := svc.List(context.Background(), member, true)
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 1)

	resp, err = svc.List(context.Background(), admin, true)
	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 2)
}

func TestService_Create(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, logger.Nop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool { return r.Name == "Aurora" })).Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Room) bool { return r.Name == "Taken" })).
		Return(roomRepo.ErrDuplicateName)

	resp, err := svc.Create(context.Background(), &models.CreateRoomRequest{Actor: admin, Name: "  Aurora ", Location: "3F", Capacity: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "Aurora", resp.Name)
	assert.True(t, resp.IsActive)

	_, err = svc.Create(context.Background(), &models.CreateRoomRequest{Actor: admin, Name: "Taken", Capacity: 8})
	assert.ErrorIs(t, err, ErrRoomAlreadyExists)

	_, err = svc.Create(context.Background(), &models.CreateRoomRequest{Actor: member, Name: "Mine", Capacity: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Create(context.Background(), &models.CreateRoomRequest{Actor: admin, Name: "Zero", Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateRoomRequest{Actor: admin, Name: "   ", Capacity: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, logger.Nop())

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, Name: "Aurora", Capacity: 8, IsActive: true}, nil)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, roomRepo.ErrRoomNotFound)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	inactive := false
	capacity := 12
	resp, err := svc.Update(context.Background(), &models.UpdateRoomRequest{Actor: admin, RoomID: 1, IsActive: &inactive, Capacity: &capacity})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, 12, resp.Capacity)
	assert.Equal(t, "Aurora", resp.Name)

	_, err = svc.Update(context.Background(), &models.UpdateRoomRequest{Actor: admin, RoomID: 404, IsActive: &inactive})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.Update(context.Background(), &models.UpdateRoomRequest{Actor: member, RoomID: 1, IsActive: &inactive})
	assert.ErrorIs(t, err, ErrAccessDenied)

	repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	_, err = svc.Update(context.Background(), &models.UpdateRoomRequest{Actor: admin, RoomID: 1, Capacity: &capacity})
	assert.ErrorIs(t, err, ErrInternal)

	repo.AssertExpectations(t)
}
