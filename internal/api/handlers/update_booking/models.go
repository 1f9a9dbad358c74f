package update_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model. Отсутствующие поля не изменяются.
type UpdateBookingRequest struct {
	RoomID      *int64  `json:"roomId,omitempty" validate:"omitempty,gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	BookingDate *string `json:"bookingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=meeting training event"`

	ReusableContainers           *int    `json:"reusableContainers,omitempty" validate:"omitempty,gte=0"`
	NoDisposableCupHeadcount     *int    `json:"noDisposableCupHeadcount,omitempty" validate:"omitempty,gte=0"`
	TakeoutContainers            *int    `json:"takeoutContainers,omitempty" validate:"omitempty,gte=0"`
	ApprovedDisposableContainers *int    `json:"approvedDisposableContainers,omitempty" validate:"omitempty,gte=0"`
	NonComplianceReason          *string `json:"nonComplianceReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID uuid.UUID) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		Actor:                        actor,
		BookingID:                    bookingID,
		RoomID:                       r.RoomID,
		Title:                        r.Title,
		Notes:                        r.Notes,
		Category:                     r.Category,
		ReusableContainers:           r.ReusableContainers,
		NoDisposableCupHeadcount:     r.NoDisposableCupHeadcount,
		TakeoutContainers:            r.TakeoutContainers,
		ApprovedDisposableContainers: r.ApprovedDisposableContainers,
		NonComplianceReason:          r.NonComplianceReason,
	}

	if r.BookingDate != nil {
		date, err := handlers.ParseDate(*r.BookingDate)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
