package update_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request частичное изменение бронирования. nil означает "оставить как есть".
type Request struct {
	Actor     domain.Actor
	BookingID uuid.UUID

	RoomID    *int64
	Title     *string
	Date      *time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Notes     *string // пустая строка очищает заметку
	Category  *string

	ReusableContainers           *int
	NoDisposableCupHeadcount     *int
	TakeoutContainers            *int
	ApprovedDisposableContainers *int
	NonComplianceReason          *string
}

// Response модель ответа с изменённым бронированием
type Response = models.BookingResponse
