package ratelimit

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// AttemptStore хранилище счётчиков неудачных входов.
// Get возвращает domain.ErrLoginAttemptNotFound, если записи нет.
type AttemptStore interface {
	Get(ctx context.Context, address string) (*domain.LoginAttempt, error)
	Insert(ctx context.Context, attempt *domain.LoginAttempt) error
	Update(ctx context.Context, attempt *domain.LoginAttempt) error
	Delete(ctx context.Context, address string) error
}

// Metrics метрики ограничителя
type Metrics interface {
	IncLoginBlocked()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
