package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	validator   Validator
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, validator Validator, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		validator:   validator,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование может владелец или администратор.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%d", id, actor.UserID)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !s.validator.CanView(actor, booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListByUser получает бронирования пользователя.
// Пользователь видит только свои бронирования, администратор любые.
func (s *Service) ListByUser(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByUser: fetching bookings of user=%d for actor=%d", req.UserID, req.Actor.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.Actor.IsAdmin() && req.Actor.UserID != req.UserID {
		s.logger.Warn("ListByUser: access denied for actor=%d to bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, domain.UserBookingsFilter{UserID: req.UserID, FromDate: req.FromDate})
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Delete удаляет бронирование.
// Права те же, что и на изменение: владелец до окончания бронирования или администратор.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%d", id, actor.UserID)

	booking, err := s.load(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.validator.Authorize(actor, booking); err != nil {
		s.logger.Warn("Delete: user=%d cannot delete booking id=%s: %v", actor.UserID, id, err)
		if errors.Is(err, bookingvalidator.ErrBookingExpired) {
			return ErrBookingExpired
		}
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s disappeared before delete", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted", id)
	return nil
}

func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
