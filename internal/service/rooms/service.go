package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// Service сервис для работы с переговорными комнатами
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// List возвращает комнаты.
// Неактивные комнаты видит только администратор.
func (s *Service) List(ctx context.Context, actor domain.Actor, includeInactive bool) (*models.RoomListResponse, error) {
	includeInactive = includeInactive && actor.IsAdmin()
	s.logger.Info("List: fetching rooms (includeInactive=%t) for user=%d", includeInactive, actor.UserID)

	rooms, err := s.roomRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoomList(rooms), nil
}

// GetByID получает комнату по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RoomResponse, error) {
	s.logger.Info("GetByID: fetching room id=%d", id)

	room, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainRoom(room), nil
}

// Create создает новую комнату.
// Доступно только администратору.
func (s *Service) Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room %q by user=%d", req.Name, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Create: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	room := &domain.Room{
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
		Capacity: req.Capacity,
		IsActive: true,
	}
	if err := validateRoom(room); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, roomRepo.ErrDuplicateName) {
			s.logger.Warn("Create: room %q already exists", room.Name)
			return nil, ErrRoomAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created room id=%d", room.ID)
	return models.FromDomainRoom(room), nil
}

// Update изменяет комнату.
// Доступно только администратору. Деактивированная комната не принимает новые бронирования,
// существующие бронирования сохраняются.
func (s *Service) Update(ctx context.Context, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Update: updating room id=%d by user=%d", req.RoomID, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Update: user=%d is not an admin", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	room, err := s.load(ctx, "Update", req.RoomID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		room.Location = strings.TrimSpace(*req.Location)
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := validateRoom(room); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		switch {
		case errors.Is(err, roomRepo.ErrRoomNotFound):
			s.logger.Warn("Update: room id=%d disappeared before update", req.RoomID)
			return nil, ErrRoomNotFound
		case errors.Is(err, roomRepo.ErrDuplicateName):
			s.logger.Warn("Update: room name %q already taken", room.Name)
			return nil, ErrRoomAlreadyExists
		}
		s.logger.Error("Update: repository error for room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated room id=%d", room.ID)
	return models.FromDomainRoom(room), nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Room, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			s.logger.Warn("%s: room id=%d not found", op, id)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("%s: repository error for room id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return room, nil
}

// validateRoom валидирует данные комнаты
func validateRoom(room *domain.Room) error {
	if room.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(room.Name)) > domain.MaxRoomNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxRoomNameLength)
	}
	if len([]rune(room.Location)) > domain.MaxRoomLocationLength {
		return fmt.Errorf("%w: location must not exceed %d characters", ErrInvalidInput, domain.MaxRoomLocationLength)
	}
	if room.Capacity < 1 || room.Capacity > domain.MaxRoomCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, domain.MaxRoomCapacity)
	}
	return nil
}
