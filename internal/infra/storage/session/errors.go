package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	ErrBuildQuery = errors.New("session.repository: failed to build query")
	ErrExecQuery  = errors.New("session.repository: failed to execute query")
	ErrScanRow    = errors.New("session.repository: failed to scan row")
)
