package bookingvalidator

import "errors"

var (
	// ErrTimeOrder время окончания не позже времени начала (локальная проверка или bookings_time_order)
	ErrTimeOrder = errors.New("end time must be after start time")

	// ErrDateInPast дата бронирования раньше сегодняшней в часовом поясе площадки
	ErrDateInPast = errors.New("date has already passed, cannot create")

	// ErrReasonRequired причина "other" указана без пояснения
	ErrReasonRequired = errors.New("must supply a reason")

	// ErrSlotAlreadyBooked интервал пересекается с другим бронированием комнаты (no_overlap)
	ErrSlotAlreadyBooked = errors.New("time slot already booked")

	// ErrAccessDenied пользователь не владелец и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingExpired бронирование уже закончилось, изменять его может только администратор
	ErrBookingExpired = errors.New("booking has already ended")

	// ErrStoreFailure ошибка хранилища, не являющаяся нарушением известных ограничений
	ErrStoreFailure = errors.New("bookingvalidator: store failure")
)
