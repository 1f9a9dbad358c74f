package create_booking

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OwnerID     *int64  `json:"ownerId,omitempty" validate:"omitempty,gt=0"`
	RoomID      int64   `json:"roomId" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,max=200"`
	BookingDate string  `json:"bookingDate" validate:"required,datetime=2006-01-02"` // "2025-06-10"
	StartTime   string  `json:"startTime" validate:"required,datetime=15:04"`        // "09:00"
	EndTime     string  `json:"endTime" validate:"required,datetime=15:04"`          // "10:00"
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Category    string  `json:"category,omitempty" validate:"omitempty,oneof=meeting training event"`

	ReusableContainers           int    `json:"reusableContainers" validate:"gte=0"`
	NoDisposableCupHeadcount     int    `json:"noDisposableCupHeadcount" validate:"gte=0"`
	TakeoutContainers            int    `json:"takeoutContainers" validate:"gte=0"`
	ApprovedDisposableContainers int    `json:"approvedDisposableContainers" validate:"gte=0"`
	NonComplianceReason          string `json:"nonComplianceReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:                        actor,
		OwnerID:                      r.OwnerID,
		RoomID:                       r.RoomID,
		Title:                        r.Title,
		Date:                         bookingDate,
		StartTime:                    startTime,
		EndTime:                      endTime,
		Notes:                        r.Notes,
		Category:                     r.Category,
		ReusableContainers:           r.ReusableContainers,
		NoDisposableCupHeadcount:     r.NoDisposableCupHeadcount,
		TakeoutContainers:            r.TakeoutContainers,
		ApprovedDisposableContainers: r.ApprovedDisposableContainers,
		NonComplianceReason:          r.NonComplianceReason,
	}, nil
}
