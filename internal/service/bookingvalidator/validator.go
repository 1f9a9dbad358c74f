package bookingvalidator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Причины отказа для метрик
const (
	RejectionTimeOrder      = "time_order"
	RejectionDateInPast     = "date_in_past"
	RejectionReasonRequired = "reason_required"
	RejectionSlotTaken      = "slot_taken"
)

// Candidate бронирование, предлагаемое к созданию или изменению
type Candidate struct {
	RoomID              int64
	Date                time.Time
	StartTime           types.TimeString
	EndTime             types.TimeString
	NonComplianceReason domain.NonComplianceReason
	Notes               *string
}

// CandidateFromBooking собирает кандидата из бронирования
func CandidateFromBooking(b *domain.Booking) Candidate {
	return Candidate{
		RoomID:              b.RoomID,
		Date:                b.BookingDate,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		NonComplianceReason: b.NonComplianceReason,
		Notes:               b.Notes,
	}
}

// Validator проверяет допустимость бронирования до записи в хранилище
// и переводит нарушения ограничений таблицы bookings в доменные ошибки.
// Пересечения проверяет только хранилище (no_overlap), локально они не ищутся.
type Validator struct {
	loc          *time.Location
	timeProvider TimeProvider
}

// NewValidator создает валидатор для часового пояса площадки
func NewValidator(loc *time.Location) *Validator {
	return NewValidatorWithClock(loc, &RealTimeProvider{})
}

// NewValidatorWithClock создает валидатор с заданным источником времени
func NewValidatorWithClock(loc *time.Location, timeProvider TimeProvider) *Validator {
	return &Validator{loc: loc, timeProvider: timeProvider}
}

// Location часовой пояс площадки
func (v *Validator) Location() *time.Location {
	return v.loc
}

// Today сегодняшняя дата (полночь) в часовом поясе площадки
func (v *Validator) Today() time.Time {
	now := v.timeProvider.Now().In(v.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)
}

// Validate выполняет локальные проверки по порядку, возвращая первую ошибку:
// порядок времени, дата не в прошлом, пояснение для причины "other".
func (v *Validator) Validate(c Candidate) error {
	if !c.EndTime.IsAfter(c.StartTime) {
		return ErrTimeOrder
	}

	y, m, d := c.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, v.loc)
	if date.Before(v.Today()) {
		return ErrDateInPast
	}

	if c.NonComplianceReason == domain.ReasonOther && (c.Notes == nil || strings.TrimSpace(*c.Notes) == "") {
		return ErrReasonRequired
	}

	return nil
}

// ClassifyStoreError переводит ошибку записи в хранилище:
// no_overlap -> ErrSlotAlreadyBooked, bookings_time_order -> ErrTimeOrder.
// Остальные ошибки оборачиваются в ErrStoreFailure с сохранением исходной.
func (v *Validator) ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case pgerrors.Is(err, pgerrors.CodeExclusionViolation, domain.ConstraintNoOverlap):
		return ErrSlotAlreadyBooked
	case pgerrors.Is(err, pgerrors.CodeCheckViolation, domain.ConstraintTimeOrder):
		return ErrTimeOrder
	default:
		return fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
}

// Authorize проверяет право actor изменять или удалять бронирование.
// Владелец без роли администратора не может менять уже закончившееся бронирование.
func (v *Validator) Authorize(actor domain.Actor, booking *domain.Booking) error {
	if !actor.IsAdmin() && !booking.IsOwnedBy(actor.UserID) {
		return ErrAccessDenied
	}
	if !actor.IsAdmin() && booking.HasEnded(v.timeProvider.Now(), v.loc) {
		return ErrBookingExpired
	}
	return nil
}

// CanView возвращает true, если actor может видеть бронирование
func (v *Validator) CanView(actor domain.Actor, booking *domain.Booking) bool {
	return actor.IsAdmin() || booking.IsOwnedBy(actor.UserID)
}

// RejectionReason возвращает метку причины отказа для метрик или пустую строку
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTimeOrder):
		return RejectionTimeOrder
	case errors.Is(err, ErrDateInPast):
		return RejectionDateInPast
	case errors.Is(err, ErrReasonRequired):
		return RejectionReasonRequired
	case errors.Is(err, ErrSlotAlreadyBooked):
		return RejectionSlotTaken
	default:
		return ""
	}
}
