package loginattempt

import (
	"errors"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrNotFound возвращается, когда записи для адреса нет.
	// Совпадает с доменной ошибкой, чтобы сервис не зависел от конкретного хранилища.
	ErrNotFound = domain.ErrLoginAttemptNotFound

	ErrBuildQuery = errors.New("loginattempt.repository: failed to build query")
	ErrExecQuery  = errors.New("loginattempt.repository: failed to execute query")
	ErrScanRow    = errors.New("loginattempt.repository: failed to scan row")
)
