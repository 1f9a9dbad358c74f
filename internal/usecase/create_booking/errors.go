package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomInactive возвращается, когда комната выведена из бронирования
	ErrRoomInactive = errors.New("create_booking: room is not available for booking")

	// ErrOwnerNotFound возвращается, когда владелец бронирования не найден или неактивен
	ErrOwnerNotFound = errors.New("create_booking: owner not found")

	// ErrAccessDenied возвращается, когда не-администратор бронирует за другого пользователя
	ErrAccessDenied = errors.New("create_booking: only administrators can book on behalf of another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
