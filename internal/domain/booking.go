package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// BookingCategory тип мероприятия
type BookingCategory string

const (
	CategoryMeeting  BookingCategory = "meeting"
	CategoryTraining BookingCategory = "training"
	CategoryEvent    BookingCategory = "event"
)

// NonComplianceReason причина использования одноразовой посуды
type NonComplianceReason string

const (
	ReasonNone              NonComplianceReason = "none"
	ReasonVendorUnavailable NonComplianceReason = "vendor_unavailable"
	ReasonExternalGuests    NonComplianceReason = "external_guests"
	ReasonInsufficientStock NonComplianceReason = "insufficient_stock"
	ReasonOther             NonComplianceReason = "other"
)

// Booking бронирование переговорной.
// Интервал [StartTime, EndTime) на дату BookingDate в часовом поясе площадки.
type Booking struct {
	ID          uuid.UUID
	RoomID      int64
	UserID      int64 // владелец бронирования
	Title       string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Notes       *string
	Category    BookingCategory

	// Учёт посуды
	ReusableContainers           int
	NoDisposableCupHeadcount     int
	TakeoutContainers            int
	ApprovedDisposableContainers int
	NonComplianceReason          NonComplianceReason

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt возвращает момент начала бронирования в зоне loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.StartTime.On(b.BookingDate, loc)
}

// EndsAt возвращает момент окончания бронирования в зоне loc
func (b *Booking) EndsAt(loc *time.Location) time.Time {
	return b.EndTime.On(b.BookingDate, loc)
}

// HasEnded возвращает true, если бронирование уже закончилось
func (b *Booking) HasEnded(now time.Time, loc *time.Location) bool {
	return now.After(b.EndsAt(loc))
}

// IsOwnedBy возвращает true, если пользователь является владельцем бронирования
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// Overlaps проверяет пересечение полуоткрытых интервалов в пределах одной комнаты и даты.
// Бронирования, граничащие друг с другом (10:00-11:00 и 11:00-12:00), не пересекаются.
func (b *Booking) Overlaps(other *Booking) bool {
	if b.RoomID != other.RoomID || !sameDate(b.BookingDate, other.BookingDate) {
		return false
	}
	return b.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(b.EndTime)
}

// IsValidCategory проверяет значение категории
func IsValidCategory(c BookingCategory) bool {
	switch c {
	case CategoryMeeting, CategoryTraining, CategoryEvent:
		return true
	default:
		return false
	}
}

// IsValidNonComplianceReason проверяет значение причины
func IsValidNonComplianceReason(r NonComplianceReason) bool {
	switch r {
	case ReasonNone, ReasonVendorUnavailable, ReasonExternalGuests, ReasonInsufficientStock, ReasonOther:
		return true
	default:
		return false
	}
}

// RoomBookingsFilter фильтр бронирований комнаты
type RoomBookingsFilter struct {
	RoomID    int64      // Обязательный параметр
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
}

// UserBookingsFilter фильтр бронирований пользователя
type UserBookingsFilter struct {
	UserID   int64
	FromDate *time.Time // Только бронирования начиная с даты (опционально)
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
