package get_room_bookings

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
	resp      *models.GroupedBookingsResponse
	err       error
	requester string
}

func (f *fakeService) ListRoomBookings(_ context.Context, _ string, requesterID string) (*models.GroupedBookingsResponse, error) {
	f.requester = requesterID
	return f.resp, f.err
}

func serve(h *Handler, roomID, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+roomID+"/bookings", nil)
	req = mux.SetURLVars(req, map[string]string{"roomId": roomID})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.GroupedBookingsResponse{
		Today:    "2025-01-12",
		Occupied: []models.BookingResponse{{ID: "b-now", Status: "occupied"}},
		Upcoming: []models.BookingResponse{},
		Past:     []models.BookingResponse{},
		Total:    1,
	}}
	h := NewHandler(svc, logger.Discard())

	rec := serve(h, "room-101", "admin@hotel.com")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"occupied":[{`)
	assert.Contains(t, rec.Body.String(), `"upcoming":[]`)
	assert.Equal(t, "admin@hotel.com", svc.requester)
}

func TestHandle_RequiresUser(t *testing.T) {
	svc := &fakeService{resp: &models.GroupedBookingsResponse{}}
	h := NewHandler(svc, logger.Discard())

	rec := serve(h, "room-101", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "guestName")
	assert.Empty(t, svc.requester)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: bookings.ErrInvalidInput, want: http.StatusBadRequest},
		{err: bookings.ErrRoomNotFound, want: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&fakeService{err: tt.err}, logger.Discard())
		assert.Equal(t, tt.want, serve(h, "room-101", "guest@example.com").Code, tt.err.Error())
	}
}
