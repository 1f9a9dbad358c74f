package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
)

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	validator   Validator
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	validator Validator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		validator:   validator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет изменение бронирования.
// Права проверяются по сохранённой версии, допустимость по итоговой.
// При любом отказе сохранённое бронирование не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: actor=%d, booking=%s", req.Actor.UserID, req.BookingID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if err := uc.validator.Authorize(req.Actor, current); err != nil {
		uc.logger.Warn("UpdateBooking: actor=%d cannot modify booking id=%s: %v", req.Actor.UserID, req.BookingID, err)
		return nil, err
	}

	updated := applyPatch(current, req)

	if err := uc.validator.Validate(bookingvalidator.CandidateFromBooking(updated)); err != nil {
		uc.logger.Warn("UpdateBooking: rejected booking id=%s: %v", req.BookingID, err)
		uc.metrics.IncBookingRejection(bookingvalidator.RejectionReason(err))
		return nil, err
	}

	if updated.RoomID != current.RoomID {
		room, err := uc.roomRepo.GetByID(ctx, updated.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("UpdateBooking: room id=%d not found", updated.RoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get room id=%d: %v", updated.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
		if !room.CanBeBooked() {
			uc.logger.Warn("UpdateBooking: room id=%d is inactive", updated.RoomID)
			return nil, ErrRoomInactive
		}
	}

	// Строка не конфликтует сама с собой по no_overlap, сравнение идёт только с другими бронированиями
	if err := uc.bookingRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%s deleted concurrently", req.BookingID)
			return nil, ErrBookingNotFound
		}
		classified := uc.validator.ClassifyStoreError(err)
		if errors.Is(classified, bookingvalidator.ErrStoreFailure) {
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to update booking: %w", ErrInternal, classified)
		}
		uc.logger.Warn("UpdateBooking: store rejected booking id=%s: %v", req.BookingID, classified)
		uc.metrics.IncBookingRejection(bookingvalidator.RejectionReason(classified))
		return nil, classified
	}

	uc.logger.Info("UpdateBooking: booking id=%s updated, room=%d %s %s-%s",
		updated.ID, updated.RoomID, updated.BookingDate.Format(domain.DateFormat), updated.StartTime, updated.EndTime)

	return models.FromDomainBooking(updated), nil
}
