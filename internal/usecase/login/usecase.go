package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultBlocked = "blocked"
)

// dummyHash сравнивается с паролем, когда пользователь не найден
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("room-booking"), bcrypt.DefaultCost)

// UseCase use case для входа по e-mail и паролю
type UseCase struct {
	userRepo     UserRepository
	sessionRepo  SessionRepository
	limiter      RateLimiter
	metrics      Metrics
	sessionTTL   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	limiter RateLimiter,
	metrics Metrics,
	sessionTTL time.Duration,
	logger Logger,
) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	return &UseCase{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		limiter:      limiter,
		metrics:      metrics,
		sessionTTL:   sessionTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет учётные данные и выдаёт сессию.
// Заблокированный адрес получает *ratelimit.RateLimitedError до проверки пароля.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	email := strings.TrimSpace(req.Email)
	uc.logger.Info("Login: attempt for email=%s from address=%s", email, req.Address)

	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	// 1. Проверяем ограничение по адресу
	decision := uc.limiter.Check(ctx, req.Address)
	if !decision.Allowed {
		uc.logger.Warn("Login: address=%s is blocked for %d min", req.Address, decision.RetryAfterMinutes)
		uc.record(resultBlocked)
		return nil, decision.Err()
	}

	// 2. Проверяем пользователя и пароль
	user, err := uc.authenticate(ctx, email, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			return nil, err
		}
		if recErr := uc.limiter.RecordFailedAttempt(ctx, req.Address); recErr != nil {
			uc.logger.Error("Login: failed to record failed attempt for address=%s: %v", req.Address, recErr)
		}
		uc.record(resultFailure)
		return nil, err
	}

	// 3. Сбрасываем счётчик неудачных попыток
	if err := uc.limiter.Clear(ctx, req.Address); err != nil {
		uc.logger.Error("Login: failed to clear attempts for address=%s: %v", req.Address, err)
	}

	// 4. Создаем сессию
	now := uc.timeProvider.Now()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		uc.logger.Error("Login: failed to create session for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	uc.record(resultSuccess)
	uc.logger.Info("Login: user=%d signed in", user.ID)

	return &Response{
		Token:     session.Token,
		UserID:    user.ID,
		Role:      string(user.Role),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (uc *UseCase) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			uc.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		uc.logger.Error("Login: failed to get user by email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Warn("Login: wrong password for user=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		uc.logger.Warn("Login: user=%d is deactivated", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.IncLoginAttempt(result)
	}
}
