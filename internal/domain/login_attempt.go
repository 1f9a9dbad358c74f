package domain

import (
	"errors"
	"time"
)

// LoginAttempt счётчик неудачных попыток входа с одного адреса
type LoginAttempt struct {
	Address     string
	Attempts    int
	LastAttempt time.Time
}

// WindowElapsed возвращает true, если с последней попытки прошло больше window
func (a *LoginAttempt) WindowElapsed(now time.Time, window time.Duration) bool {
	return now.Sub(a.LastAttempt) > window
}

// ErrLoginAttemptNotFound возвращается хранилищем, если для адреса нет записи
var ErrLoginAttemptNotFound = errors.New("login attempt not found")
