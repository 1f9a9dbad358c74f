package update_room

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// UpdateRoomRequest HTTP request model. Отсутствующие поля не изменяются.
type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0,lte=1000"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateRoomRequest) ToServiceRequest(actor domain.Actor, roomID int64) *models.UpdateRoomRequest {
	return &models.UpdateRoomRequest{
		Actor:    actor,
		RoomID:   roomID,
		Name:     r.Name,
		Location: r.Location,
		Capacity: r.Capacity,
		IsActive: r.IsActive,
	}
}
