package ratelimit

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyAttempts возвращается, когда вход с адреса временно заблокирован
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// ErrStoreFailure возвращается при ошибке хранилища счётчиков
	ErrStoreFailure = errors.New("ratelimit: store failure")
)

// RateLimitedError блокировка входа с указанием, через сколько минут можно повторить
type RateLimitedError struct {
	RetryAfterMinutes int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s, retry after %d minutes", ErrTooManyAttempts, e.RetryAfterMinutes)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrTooManyAttempts
}
