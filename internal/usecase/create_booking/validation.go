package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и проставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(req.Title)) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Category == "" {
		req.Category = string(domain.CategoryMeeting)
	}
	if !domain.IsValidCategory(domain.BookingCategory(req.Category)) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if req.NonComplianceReason == "" {
		req.NonComplianceReason = string(domain.ReasonNone)
	}
	if !domain.IsValidNonComplianceReason(domain.NonComplianceReason(req.NonComplianceReason)) {
		return fmt.Errorf("%w: unknown nonComplianceReason %q", ErrInvalidInput, req.NonComplianceReason)
	}

	counters := map[string]int{
		"reusableContainers":           req.ReusableContainers,
		"noDisposableCupHeadcount":     req.NoDisposableCupHeadcount,
		"takeoutContainers":            req.TakeoutContainers,
		"approvedDisposableContainers": req.ApprovedDisposableContainers,
	}
	for name, value := range counters {
		if value < 0 || value > domain.MaxContainerCount {
			return fmt.Errorf("%w: %s must be within [0, %d]", ErrInvalidInput, name, domain.MaxContainerCount)
		}
	}

	return nil
}

// resolveOwner определяет владельца бронирования.
// Бронировать за другого пользователя может только администратор.
func resolveOwner(req *Request) (int64, error) {
	if req.OwnerID == nil || *req.OwnerID == req.Actor.UserID {
		return req.Actor.UserID, nil
	}
	if *req.OwnerID <= 0 {
		return 0, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if !req.Actor.IsAdmin() {
		return 0, ErrAccessDenied
	}
	return *req.OwnerID, nil
}
