package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	userRepo    UserRepository
	validator   Validator
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	userRepo UserRepository,
	validator Validator,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		validator:   validator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Пересечения не проверяются заранее и не блокируются: единственная точка сериализации
// это ограничение no_overlap, его нарушение возвращается как bookingvalidator.ErrSlotAlreadyBooked.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, room=%d, date=%s, time=%s-%s",
		req.Actor.UserID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	ownerID, err := resolveOwner(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: actor=%d cannot book for owner: %v", req.Actor.UserID, err)
		return nil, err
	}

	booking := &domain.Booking{
		ID:                           uuid.New(),
		RoomID:                       req.RoomID,
		UserID:                       ownerID,
		Title:                        req.Title,
		BookingDate:                  req.Date,
		StartTime:                    req.StartTime,
		EndTime:                      req.EndTime,
		Notes:                        req.Notes,
		Category:                     domain.BookingCategory(req.Category),
		ReusableContainers:           req.ReusableContainers,
		NoDisposableCupHeadcount:     req.NoDisposableCupHeadcount,
		TakeoutContainers:            req.TakeoutContainers,
		ApprovedDisposableContainers: req.ApprovedDisposableContainers,
		NonComplianceReason:          domain.NonComplianceReason(req.NonComplianceReason),
	}

	// 2. Локальные проверки до обращения к хранилищу
	if err := uc.validator.Validate(bookingvalidator.CandidateFromBooking(booking)); err != nil {
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		uc.metrics.IncBookingRejection(bookingvalidator.RejectionReason(err))
		return nil, err
	}

	// 3. Комната должна существовать и быть доступной
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if !room.CanBeBooked() {
		uc.logger.Warn("CreateBooking: room id=%d is inactive", req.RoomID)
		return nil, ErrRoomInactive
	}

	// 4. Владелец, назначенный администратором, должен существовать
	if ownerID != req.Actor.UserID {
		owner, err := uc.userRepo.GetByID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: owner id=%d not found", ownerID)
				return nil, ErrOwnerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get owner id=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: failed to get owner: %v", ErrInternal, err)
		}
		if !owner.IsActive {
			uc.logger.Warn("CreateBooking: owner id=%d is inactive", ownerID)
			return nil, ErrOwnerNotFound
		}
	}

	// 5. Запись; пересечения и порядок времени проверяет хранилище
	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		classified := uc.validator.ClassifyStoreError(err)
		if errors.Is(classified, bookingvalidator.ErrStoreFailure) {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, classified)
		}
		uc.logger.Warn("CreateBooking: store rejected booking room=%d %s %s-%s: %v",
			req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, classified)
		uc.metrics.IncBookingRejection(bookingvalidator.RejectionReason(classified))
		return nil, classified
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", booking.ID)

	return models.FromDomainBooking(booking), nil
}
