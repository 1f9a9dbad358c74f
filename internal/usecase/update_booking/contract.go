package update_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Validator проверка прав и допустимости изменения
type Validator interface {
	Authorize(actor domain.Actor, booking *domain.Booking) error
	Validate(c bookingvalidator.Candidate) error
	ClassifyStoreError(err error) error
}

// Metrics счётчики отказов
type Metrics interface {
	IncBookingRejection(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
