package create_room

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"max=200"`
	Capacity int    `json:"capacity" validate:"required,gt=0,lte=1000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRoomRequest) ToServiceRequest(actor domain.Actor) *models.CreateRoomRequest {
	return &models.CreateRoomRequest{
		Actor:    actor,
		Name:     r.Name,
		Location: r.Location,
		Capacity: r.Capacity,
	}
}
