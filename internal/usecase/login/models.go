package login

import "time"

// Request модель запроса на вход
type Request struct {
	Email    string
	Password string
	Address  string // адрес клиента, по нему считаются неудачные попытки
}

// Response модель ответа с выданной сессией
type Response struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"userId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
