package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/ratelimit"
	loginUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/login"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *loginUC.Request
	resp *loginUC.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *loginUC.Request) (*loginUC.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = "192.0.2.7:40000"
	rec := httptest.NewRecorder()
	middleware.ClientAddress(false, nil)(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &stubUseCase{resp: &loginUC.Response{Token: "tok", UserID: 7, Role: "user"}}
	rec := serve(NewHandler(uc, logger.Nop()), `{"email":"ann@example.com","password":"pw"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "192.0.2.7", uc.got.Address)

	var body loginUC.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "tok", body.Token)
}

func TestHandle_RateLimited(t *testing.T) {
	uc := &stubUseCase{err: &ratelimit.RateLimitedError{RetryAfterMinutes: 3}}
	rec := serve(NewHandler(uc, logger.Nop()), `{"email":"ann@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "180", rec.Header().Get("Retry-After"))

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "3 мин")
}

func TestHandle_Rejections(t *testing.T) {
	uc := &stubUseCase{err: loginUC.ErrInvalidCredentials}
	h := NewHandler(uc, logger.Nop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, `{"email":"ann@example.com","password":"bad"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"email":"not-an-email","password":"pw"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"email":"ann@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"email":"ann@example.com","password":"pw","extra":1}`).Code)
}
