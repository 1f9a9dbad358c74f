package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Decision результат проверки адреса
type Decision struct {
	Allowed           bool
	RetryAfterMinutes int
}

// Err возвращает *RateLimitedError для запрещённой попытки, иначе nil
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &RateLimitedError{RetryAfterMinutes: d.RetryAfterMinutes}
}

// Options параметры ограничителя
type Options struct {
	MaxAttempts int
	Window      time.Duration
	// FailClosed запрещает вход, если хранилище недоступно
	FailClosed bool
}

// Limiter ограничивает число неудачных входов с одного адреса.
//
// Проверка и запись выполняются отдельными запросами без общей транзакции,
// поэтому при параллельных неудачных попытках с одного адреса счётчик может
// потерять инкремент. Ограничение best-effort, атомарность не требуется.
type Limiter struct {
	store        AttemptStore
	opts         Options
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewLimiter создает ограничитель. Нулевые параметры заменяются значениями по умолчанию.
func NewLimiter(store AttemptStore, opts Options, metrics Metrics, logger Logger) *Limiter {
	return NewLimiterWithClock(store, opts, metrics, &RealTimeProvider{}, logger)
}

// NewLimiterWithClock создает ограничитель с заданным источником времени
func NewLimiterWithClock(store AttemptStore, opts Options, metrics Metrics, tp TimeProvider, logger Logger) *Limiter {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = domain.DefaultLoginMaxAttempts
	}
	if opts.Window <= 0 {
		opts.Window = domain.DefaultLoginBlockWindow
	}
	return &Limiter{
		store:        store,
		opts:         opts,
		metrics:      metrics,
		timeProvider: tp,
		logger:       logger,
	}
}

// Check проверяет, разрешена ли попытка входа с адреса
func (l *Limiter) Check(ctx context.Context, address string) Decision {
	attempt, err := l.store.Get(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrLoginAttemptNotFound) {
			return Decision{Allowed: true}
		}
		if l.opts.FailClosed {
			l.logger.Error("CheckRateLimit: store lookup failed for address=%s, denying: %v", address, err)
			return Decision{Allowed: false, RetryAfterMinutes: l.windowMinutes()}
		}
		l.logger.Error("CheckRateLimit: store lookup failed for address=%s, allowing: %v", address, err)
		return Decision{Allowed: true}
	}

	now := l.timeProvider.Now()
	if attempt.WindowElapsed(now, l.opts.Window) {
		return Decision{Allowed: true}
	}

	if attempt.Attempts >= l.opts.MaxAttempts {
		remaining := l.opts.Window - now.Sub(attempt.LastAttempt)
		retry := int(math.Ceil(remaining.Minutes()))
		if retry < 1 {
			retry = 1
		}
		l.logger.Warn("CheckRateLimit: address=%s blocked after %d attempts, retry in %d min",
			address, attempt.Attempts, retry)
		if l.metrics != nil {
			l.metrics.IncLoginBlocked()
		}
		return Decision{Allowed: false, RetryAfterMinutes: retry}
	}

	return Decision{Allowed: true}
}

// RecordFailedAttempt учитывает неудачную попытку входа.
// Первая попытка и попытка после истечения окна начинают счётчик с 1.
func (l *Limiter) RecordFailedAttempt(ctx context.Context, address string) error {
	now := l.timeProvider.Now()

	attempt, err := l.store.Get(ctx, address)
	if errors.Is(err, domain.ErrLoginAttemptNotFound) {
		return l.insert(ctx, &domain.LoginAttempt{Address: address, Attempts: 1, LastAttempt: now})
	}
	if err != nil {
		l.logger.Error("RecordFailedAttempt: store lookup failed for address=%s: %v", address, err)
		return fmt.Errorf("%w: RecordFailedAttempt - get: %v", ErrStoreFailure, err)
	}

	if attempt.WindowElapsed(now, l.opts.Window) {
		attempt.Attempts = 1
	} else {
		attempt.Attempts++
	}
	attempt.LastAttempt = now

	err = l.store.Update(ctx, attempt)
	if errors.Is(err, domain.ErrLoginAttemptNotFound) {
		// запись удалили между чтением и обновлением
		attempt.Attempts = 1
		return l.insert(ctx, attempt)
	}
	if err != nil {
		l.logger.Error("RecordFailedAttempt: store update failed for address=%s: %v", address, err)
		return fmt.Errorf("%w: RecordFailedAttempt - update: %v", ErrStoreFailure, err)
	}

	l.logger.Info("RecordFailedAttempt: address=%s has %d failed attempts", address, attempt.Attempts)
	return nil
}

// Clear удаляет счётчик адреса после успешного входа
func (l *Limiter) Clear(ctx context.Context, address string) error {
	if err := l.store.Delete(ctx, address); err != nil {
		l.logger.Error("ClearRateLimit: store delete failed for address=%s: %v", address, err)
		return fmt.Errorf("%w: Clear - delete: %v", ErrStoreFailure, err)
	}
	return nil
}

func (l *Limiter) insert(ctx context.Context, attempt *domain.LoginAttempt) error {
	if err := l.store.Insert(ctx, attempt); err != nil {
		l.logger.Error("RecordFailedAttempt: store insert failed for address=%s: %v", attempt.Address, err)
		return fmt.Errorf("%w: RecordFailedAttempt - insert: %v", ErrStoreFailure, err)
	}
	l.logger.Info("RecordFailedAttempt: address=%s has %d failed attempts", attempt.Address, attempt.Attempts)
	return nil
}

func (l *Limiter) windowMinutes() int {
	minutes := int(math.Ceil(l.opts.Window.Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
