package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBooking/pkg/logger"
)

type fakeService struct {
	got  *models.GetUserBookingsRequest
	resp *models.GroupedBookingsResponse
	err  error
}

func (f *fakeService) ListUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.GroupedBookingsResponse, error) {
	f.got = req
	return f.resp, f.err
}

func serve(h *Handler, target, userID, requesterID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	if requesterID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), requesterID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{resp: &models.GroupedBookingsResponse{
		Today:    "2025-01-12",
		Occupied: []models.BookingResponse{},
		Upcoming: []models.BookingResponse{{ID: "b-1", Status: "upcoming"}},
		Past:     []models.BookingResponse{},
		Total:    1,
	}}
	h := NewHandler(svc, logger.Discard())

	rec := serve(h, "/api/v1/users/alice/bookings?status=upcoming", "alice", "alice")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "upcoming", *svc.got.Status)
	assert.Equal(t, "alice", svc.got.RequesterID)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized,
		serve(NewHandler(&fakeService{}, logger.Discard()), "/api/v1/users/alice/bookings", "alice", "").Code)

	h := NewHandler(&fakeService{err: bookings.ErrAccessDenied}, logger.Discard())
	assert.Equal(t, http.StatusForbidden, serve(h, "/api/v1/users/alice/bookings", "alice", "bob").Code)

	h = NewHandler(&fakeService{err: bookings.ErrInvalidInput}, logger.Discard())
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/users/alice/bookings?status=x", "alice", "alice").Code)

	h = NewHandler(&fakeService{err: bookings.ErrInternal}, logger.Discard())
	assert.Equal(t, http.StatusInternalServerError, serve(h, "/api/v1/users/alice/bookings", "alice", "alice").Code)
}
