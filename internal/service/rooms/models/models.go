package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	Actor    domain.Actor
	Name     string
	Location string
	Capacity int
}

// UpdateRoomRequest запрос на изменение комнаты (все поля опциональны)
type UpdateRoomRequest struct {
	Actor    domain.Actor
	RoomID   int64
	Name     *string
	Location *string
	Capacity *int
	IsActive *bool
}

// RoomResponse модель ответа с комнатой
type RoomResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomListResponse список комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRoom преобразует доменную модель в ответ
func FromDomainRoom(room *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Location:  room.Location,
		Capacity:  room.Capacity,
		IsActive:  room.IsActive,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

// FromDomainRoomList преобразует список доменных моделей
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, *FromDomainRoom(room))
	}
	return &RoomListResponse{Rooms: result}
}
