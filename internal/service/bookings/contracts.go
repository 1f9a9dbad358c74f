package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Validator проверка прав на бронирование
type Validator interface {
	Authorize(actor domain.Actor, booking *domain.Booking) error
	CanView(actor domain.Actor, booking *domain.Booking) bool
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
