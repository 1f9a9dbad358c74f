package get_room_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// UseCase use case для получения расписания комнаты на дату
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	workdayStart types.TimeString
	workdayEnd   types.TimeString
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	workdayStart, workdayEnd types.TimeString,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает бронирования комнаты на дату и свободные окна рабочего дня.
// Для прошедших дат свободных окон нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomSchedule: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.MinDurationMinutes < 0 {
		return nil, fmt.Errorf("%w: minDuration must not be negative", ErrInvalidInput)
	}

	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomSchedule: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomSchedule: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	date := req.Date
	bookings, err := uc.bookingRepo.ListByRoom(ctx, domain.RoomBookingsFilter{RoomID: req.RoomID, StartDate: &date, EndDate: &date})
	if err != nil {
		uc.logger.Error("GetRoomSchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	windows := make([]domain.FreeWindow, 0)
	if room.CanBeBooked() {
		now := uc.timeProvider.Now().In(uc.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
		y, m, d := req.Date.Date()
		requested := time.Date(y, m, d, 0, 0, 0, 0, uc.loc)

		switch {
		case requested.Before(today):
		case requested.Equal(today):
			windows = freeWindows(uc.workdayStart, uc.workdayEnd, bookings, roundUpToMinute(now), req.MinDurationMinutes)
		default:
			windows = freeWindows(uc.workdayStart, uc.workdayEnd, bookings, "", req.MinDurationMinutes)
		}
	}

	resp := &Response{
		RoomID:      room.ID,
		RoomName:    room.Name,
		Date:        req.Date.Format(domain.DateFormat),
		Bookings:    models.FromDomainBookingList(bookings).Bookings,
		FreeWindows: make([]FreeWindow, 0, len(windows)),
	}
	for _, w := range windows {
		resp.FreeWindows = append(resp.FreeWindows, FreeWindow{
			StartTime:       w.StartTime.String(),
			EndTime:         w.EndTime.String(),
			DurationMinutes: w.DurationMinutes(),
		})
	}

	uc.logger.Info("GetRoomSchedule: room=%d has %d bookings and %d free windows on %s",
		req.RoomID, len(bookings), len(resp.FreeWindows), resp.Date)

	return resp, nil
}
