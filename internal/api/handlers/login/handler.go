package login

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/ratelimit"
	loginUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/login"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidCredentials  = "неверный e-mail или пароль"
	msgTooManyAttemptsTmpl = "слишком много неудачных попыток входа, повторите через %d мин."
)

type Handler struct {
	useCase LoginUseCase
	logger  Logger
}

func NewHandler(useCase LoginUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	address := middleware.GetClientAddress(r.Context())

	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(address))
	if err != nil {
		var limited *ratelimit.RateLimitedError
		switch {
		case errors.As(err, &limited):
			h.logger.Warn("POST /auth/login - Too many attempts: address=%s, retry_after=%d", address, limited.RetryAfterMinutes)
			handlers.RespondTooManyRequests(w, limited.RetryAfterMinutes, fmt.Sprintf(msgTooManyAttemptsTmpl, limited.RetryAfterMinutes))

		case errors.Is(err, loginUC.ErrInvalidCredentials):
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)

		case errors.Is(err, loginUC.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /auth/login - Failed to sign in: address=%s, error=%v", address, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Signed in: user_id=%d", result.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
