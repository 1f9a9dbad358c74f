package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrRoomNotFound возвращается, когда новая комната не найдена
	ErrRoomNotFound = errors.New("update_booking: room not found")

	// ErrRoomInactive возвращается, когда новая комната выведена из бронирования
	ErrRoomInactive = errors.New("update_booking: room is not available for booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
