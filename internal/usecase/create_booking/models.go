package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor   domain.Actor // Кто создаёт бронирование
	OwnerID *int64       // Владелец, если администратор бронирует за другого (опционально)

	RoomID    int64
	Title     string
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // "09:00"
	EndTime   types.TimeString // "10:00"
	Notes     *string
	Category  string // пусто = meeting

	ReusableContainers           int
	NoDisposableCupHeadcount     int
	TakeoutContainers            int
	ApprovedDisposableContainers int
	NonComplianceReason          string // пусто = none
}

// Response модель ответа с созданным бронированием
type Response = models.BookingResponse
