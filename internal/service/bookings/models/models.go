package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string  `json:"id"`
	RoomID      int64   `json:"roomId"`
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	BookingDate string  `json:"bookingDate"` // "2025-06-10"
	StartTime   string  `json:"startTime"`   // "09:00"
	EndTime     string  `json:"endTime"`     // "10:00"
	Notes       *string `json:"notes,omitempty"`
	Category    string  `json:"category"`

	ReusableContainers           int    `json:"reusableContainers"`
	NoDisposableCupHeadcount     int    `json:"noDisposableCupHeadcount"`
	TakeoutContainers            int    `json:"takeoutContainers"`
	ApprovedDisposableContainers int    `json:"approvedDisposableContainers"`
	NonComplianceReason          string `json:"nonComplianceReason"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor    domain.Actor
	UserID   int64
	FromDate *time.Time
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                           b.ID.String(),
		RoomID:                       b.RoomID,
		UserID:                       b.UserID,
		Title:                        b.Title,
		BookingDate:                  b.BookingDate.Format(domain.DateFormat),
		StartTime:                    b.StartTime.String(),
		EndTime:                      b.EndTime.String(),
		Notes:                        b.Notes,
		Category:                     string(b.Category),
		ReusableContainers:           b.ReusableContainers,
		NoDisposableCupHeadcount:     b.NoDisposableCupHeadcount,
		TakeoutContainers:            b.TakeoutContainers,
		ApprovedDisposableContainers: b.ApprovedDisposableContainers,
		NonComplianceReason:          string(b.NonComplianceReason),
		CreatedAt:                    b.CreatedAt,
		UpdatedAt:                    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}
