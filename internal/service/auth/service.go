package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
)

// Service сервис сессий пользователей
type Service struct {
	sessionRepo  SessionRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(sessionRepo SessionRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Resolve возвращает пользователя по токену сессии.
// Истёкшая сессия удаляется.
func (s *Service) Resolve(ctx context.Context, token string) (domain.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Actor{}, ErrUnauthorized
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return domain.Actor{}, ErrUnauthorized
		}
		s.logger.Error("Resolve: failed to get session: %v", err)
		return domain.Actor{}, fmt.Errorf("%w: Resolve - session repository error: %v", ErrInternal, err)
	}

	if session.IsExpired(s.timeProvider.Now()) {
		s.logger.Info("Resolve: session of user=%d expired", session.UserID)
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			s.logger.Warn("Resolve: failed to delete expired session: %v", err)
		}
		return domain.Actor{}, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return domain.Actor{}, ErrUnauthorized
		}
		s.logger.Error("Resolve: failed to get user=%d: %v", session.UserID, err)
		return domain.Actor{}, fmt.Errorf("%w: Resolve - user repository error: %v", ErrInternal, err)
	}
	if !user.IsActive {
		s.logger.Warn("Resolve: user=%d is deactivated", user.ID)
		return domain.Actor{}, ErrUnauthorized
	}

	return domain.Actor{UserID: user.ID, Role: user.Role}, nil
}

// Logout завершает сессию. Повторный выход не считается ошибкой.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.Delete(ctx, strings.TrimSpace(token)); err != nil {
		s.logger.Error("Logout: failed to delete session: %v", err)
		return fmt.Errorf("%w: Logout - repository error: %v", ErrInternal, err)
	}
	return nil
}

// CleanupExpired удаляет истёкшие сессии
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("CleanupExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: CleanupExpired - repository error: %v", ErrInternal, err)
	}
	if removed > 0 {
		s.logger.Info("CleanupExpired: removed %d sessions", removed)
	}
	return removed, nil
}

// EnsureAdmin создает администратора, если в системе нет ни одного активного.
// Возвращает true, если пользователь был создан.
func (s *Service) EnsureAdmin(ctx context.Context, email, name, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, fmt.Errorf("%w: admin email and password are required", ErrInvalidInput)
	}

	exists, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		s.logger.Error("EnsureAdmin: failed to check admins: %v", err)
		return false, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}
	if exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	admin := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			s.logger.Warn("EnsureAdmin: user %s already exists and is not an admin", email)
			return false, fmt.Errorf("%w: email %s is taken by a non-admin user", ErrInvalidInput, email)
		}
		s.logger.Error("EnsureAdmin: failed to create admin: %v", err)
		return false, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: created admin user=%d (%s)", admin.ID, admin.Email)
	return true, nil
}
