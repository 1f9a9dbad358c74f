package domain

import "github.com/m04kA/SMC-RoomBookingService/pkg/types"

// FreeWindow свободный промежуток в расписании комнаты
type FreeWindow struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DurationMinutes возвращает длительность промежутка в минутах
func (w *FreeWindow) DurationMinutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// Fits возвращает true, если в промежуток помещается встреча длительностью minutes
func (w *FreeWindow) Fits(minutes int) bool {
	return w.DurationMinutes() >= minutes
}
