package get_room_schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// freeWindows вычисляет свободные промежутки рабочего дня между бронированиями.
// Бронирования граничат полуоткрыто: окончание одного может совпадать с началом следующего.
// Для сегодняшней даты окна начинаются не раньше notBefore.
func freeWindows(
	workdayStart, workdayEnd types.TimeString,
	bookings []*domain.Booking,
	notBefore types.TimeString,
	minDuration int,
) []domain.FreeWindow {
	sorted := make([]*domain.Booking, len(bookings))
	copy(sorted, bookings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})

	cursor := workdayStart
	if !notBefore.IsZero() && notBefore.IsAfter(cursor) {
		cursor = notBefore
	}

	windows := make([]domain.FreeWindow, 0)
	for _, b := range sorted {
		if !b.EndTime.IsAfter(cursor) {
			continue
		}
		if !b.StartTime.IsBefore(workdayEnd) {
			break
		}
		if b.StartTime.IsAfter(cursor) {
			windows = appendWindow(windows, cursor, b.StartTime, minDuration)
		}
		cursor = b.EndTime
	}

	if cursor.IsBefore(workdayEnd) {
		windows = appendWindow(windows, cursor, workdayEnd, minDuration)
	}

	return windows
}

func appendWindow(windows []domain.FreeWindow, start, end types.TimeString, minDuration int) []domain.FreeWindow {
	w := domain.FreeWindow{StartTime: start, EndTime: end}
	if w.DurationMinutes() <= 0 || !w.Fits(minDuration) {
		return windows
	}
	return append(windows, w)
}

// roundUpToMinute возвращает время суток now, округлённое вверх до минуты
func roundUpToMinute(now time.Time) types.TimeString {
	rounded := now.Truncate(time.Minute)
	if rounded.Before(now) {
		rounded = rounded.Add(time.Minute)
	}
	if rounded.Day() != now.Day() {
		return "23:59"
	}
	return types.NewTimeString(rounded)
}
