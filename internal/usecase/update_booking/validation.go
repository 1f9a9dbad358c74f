package update_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest проверяет формат переданных полей
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		if len([]rune(title)) > domain.MaxTitleLength {
			return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
		}
		req.Title = &title
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}
	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Category != nil && !domain.IsValidCategory(domain.BookingCategory(*req.Category)) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
	}

	if req.NonComplianceReason != nil && !domain.IsValidNonComplianceReason(domain.NonComplianceReason(*req.NonComplianceReason)) {
		return fmt.Errorf("%w: unknown nonComplianceReason %q", ErrInvalidInput, *req.NonComplianceReason)
	}

	counters := map[string]*int{
		"reusableContainers":           req.ReusableContainers,
		"noDisposableCupHeadcount":     req.NoDisposableCupHeadcount,
		"takeoutContainers":            req.TakeoutContainers,
		"approvedDisposableContainers": req.ApprovedDisposableContainers,
	}
	for name, value := range counters {
		if value != nil && (*value < 0 || *value > domain.MaxContainerCount) {
			return fmt.Errorf("%w: %s must be within [0, %d]", ErrInvalidInput, name, domain.MaxContainerCount)
		}
	}

	return nil
}

// applyPatch возвращает копию бронирования с применёнными изменениями
func applyPatch(current *domain.Booking, req *Request) *domain.Booking {
	updated := *current

	if req.RoomID != nil {
		updated.RoomID = *req.RoomID
	}
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Date != nil {
		updated.BookingDate = *req.Date
	}
	if req.StartTime != nil {
		updated.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updated.EndTime = *req.EndTime
	}
	if req.Notes != nil {
		if strings.TrimSpace(*req.Notes) == "" {
			updated.Notes = nil
		} else {
			notes := *req.Notes
			updated.Notes = &notes
		}
	}
	if req.Category != nil {
		updated.Category = domain.BookingCategory(*req.Category)
	}
	if req.ReusableContainers != nil {
		updated.ReusableContainers = *req.ReusableContainers
	}
	if req.NoDisposableCupHeadcount != nil {
		updated.NoDisposableCupHeadcount = *req.NoDisposableCupHeadcount
	}
	if req.TakeoutContainers != nil {
		updated.TakeoutContainers = *req.TakeoutContainers
	}
	if req.ApprovedDisposableContainers != nil {
		updated.ApprovedDisposableContainers = *req.ApprovedDisposableContainers
	}
	if req.NonComplianceReason != nil {
		updated.NonComplianceReason = domain.NonComplianceReason(*req.NonComplianceReason)
	}

	return &updated
}
