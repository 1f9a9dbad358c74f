package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
)

const (
	msgTimeOrder      = "время окончания должно быть позже времени начала"
	msgDateInPast     = "дата уже прошла, бронирование невозможно"
	msgReasonRequired = "необходимо указать причину"
	msgSlotTaken      = "это время уже занято"
)

// RespondBookingRejection отвечает на отказ валидатора бронирований.
// Возвращает false, если err не является отказом валидатора.
func RespondBookingRejection(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, bookingvalidator.ErrTimeOrder):
		RespondBadRequest(w, msgTimeOrder)
	case errors.Is(err, bookingvalidator.ErrDateInPast):
		RespondBadRequest(w, msgDateInPast)
	case errors.Is(err, bookingvalidator.ErrReasonRequired):
		RespondBadRequest(w, msgReasonRequired)
	case errors.Is(err, bookingvalidator.ErrSlotAlreadyBooked):
		RespondConflict(w, msgSlotTaken)
	default:
		return false
	}
	return true
}
