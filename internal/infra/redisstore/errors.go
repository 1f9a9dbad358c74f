package redisstore

import (
	"errors"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

var (
	// ErrNotFound возвращается, когда записи для адреса нет
	ErrNotFound = domain.ErrLoginAttemptNotFound

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("redisstore: redis command failed")

	// ErrCorruptedRecord возвращается, если запись в Redis не удалось разобрать
	ErrCorruptedRecord = errors.New("redisstore: corrupted login attempt record")
)
