package login

import loginUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/login"

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *LoginRequest) ToUseCaseRequest(address string) *loginUC.Request {
	return &loginUC.Request{
		Email:    r.Email,
		Password: r.Password,
		Address:  address,
	}
}
