package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *mockSessions) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockSessions) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsers) HasAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newService(sessions *mockSessions, users *mockUsers) *Service {
	svc := NewService(sessions, users, logger.Nop())
	svc.timeProvider = fixedClock{now: now}
	return svc
}

func TestService_Resolve(t *testing.T) {
	sessions := &mockSessions{}
	users := &mockUsers{}
	svc := newService(sessions, users)

	sessions.On("GetByToken", mock.Anything, "valid").
		Return(&domain.Session{Token: "valid", UserID: 7, ExpiresAt: now.Add(time.Hour)}, nil)
	sessions.On("GetByToken", mock.Anything, "expired").
		Return(&domain.Session{Token: "expired", UserID: 7, ExpiresAt: now}, nil)
	sessions.On("GetByToken", mock.Anything, "unknown").Return(nil, sessionRepo.ErrSessionNotFound)
	sessions.On("GetByToken", mock.Anything, "broken").Return(nil, errors.New("connection reset"))
	sessions.On("Delete", mock.Anything, "expired").Return(nil).Once()
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleAdmin, IsActive: true}, nil)

	actor, err := svc.Resolve(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: 7, Role: domain.RoleAdmin}, actor)

	_, err = svc.Resolve(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Resolve(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Resolve(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrInternal)

	sessions.AssertExpectations(t)
}

func TestService_Resolve_DeactivatedUser(t *testing.T) {
	sessions := &mockSessions{}
	users := &mockUsers{}
	svc := newService(sessions, users)

	sessions.On("GetByToken", mock.Anything, "t").
		Return(&domain.Session{Token: "t", UserID: 9, ExpiresAt: now.Add(time.Hour)}, nil)
	users.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Role: domain.RoleUser}, nil)

	_, err := svc.Resolve(context.Background(), "t")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_LogoutAndCleanup(t *testing.T) {
	sessions := &mockSessions{}
	svc := newService(sessions, &mockUsers{})

	sessions.On("Delete", mock.Anything, "t").Return(nil)
	sessions.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil)

	require.NoError(t, svc.Logout(context.Background(), " t "))

	removed, err := svc.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestService_EnsureAdmin(t *testing.T) {
	users := &mockUsers{}
	svc := newService(&mockSessions{}, users)

	users.On("HasAdmin", mock.Anything).Return(false, nil).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleAdmin && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")) == nil
	})).Return(nil).Once()

	created, err := svc.EnsureAdmin(context.Background(), "root@example.com", "Root", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	users.On("HasAdmin", mock.Anything).Return(true, nil).Once()
	created, err = svc.EnsureAdmin(context.Background(), "root@example.com", "Root", "s3cret")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.EnsureAdmin(context.Background(), "", "Root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.On("HasAdmin", mock.Anything).Return(false, nil).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(userRepo.ErrDuplicateEmail).Once()
	_, err = svc.EnsureAdmin(context.Background(), "taken@example.com", "Root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	users.AssertExpectations(t)
}
