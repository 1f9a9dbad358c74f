package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookingvalidator"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{ID: "b1", RoomID: req.RoomID, UserID: req.Actor.UserID}, nil
}

const validBody = `{"roomId":1,"title":"Sync","bookingDate":"2025-06-11","startTime":"09:00","endTime":"10:00"}`

func serve(uc *stubUseCase, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 7, Role: domain.RoleUser}))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, validBody, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), uc.got.Actor.UserID)
	assert.Equal(t, "09:00", uc.got.StartTime.String())
	assert.Equal(t, "2025-06-11", uc.got.Date.Format(domain.DateFormat))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{bookingvalidator.ErrSlotAlreadyBooked, http.StatusConflict},
		{bookingvalidator.ErrTimeOrder, http.StatusBadRequest},
		{bookingvalidator.ErrDateInPast, http.StatusBadRequest},
		{bookingvalidator.ErrReasonRequired, http.StatusBadRequest},
		{createBooking.ErrRoomNotFound, http.StatusNotFound},
		{createBooking.ErrAccessDenied, http.StatusForbidden},
		{fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := &stubUseCase{}

	assert.Equal(t, http.StatusUnauthorized, serve(uc, validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, `{"roomId":1}`, true).Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(uc, strings.Replace(validBody, "09:00", "9am", 1), true).Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(uc, strings.Replace(validBody, `"roomId":1`, `"roomId":1,"category":"party"`, 1), true).Code)
	assert.Nil(t, uc.got)
}
