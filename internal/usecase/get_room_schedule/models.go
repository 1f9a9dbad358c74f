package get_room_schedule

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Request модель запроса расписания комнаты на дату
type Request struct {
	RoomID             int64
	Date               time.Time
	MinDurationMinutes int // Скрыть свободные окна короче (опционально)
}

// Response расписание комнаты на дату
type Response struct {
	RoomID      int64                    `json:"roomId"`
	RoomName    string                   `json:"roomName"`
	Date        string                   `json:"date"`
	Bookings    []models.BookingResponse `json:"bookings"`
	FreeWindows []FreeWindow             `json:"freeWindows"`
}

// FreeWindow свободный промежуток в пределах рабочего дня
type FreeWindow struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}
