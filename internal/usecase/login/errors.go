package login

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверной паре e-mail/пароль
	ErrInvalidCredentials = errors.New("login: invalid credentials")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("login: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("login: internal error")
)
