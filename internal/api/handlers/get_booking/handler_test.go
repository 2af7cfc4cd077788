package get_booking

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

const bookingID = "7f1d2c4e-3b7a-4d2e-9a41-0c5f3e8b9d10"

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (f fakeService) GetByID(context.Context, string, string) (*models.BookingResponse, error) {
	return f.resp, f.err
}

func serve(h *Handler, id, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	h := NewHandler(fakeService{resp: &models.BookingResponse{
		ID:        bookingID,
		RoomID:    "room-101",
		StartDate: "2025-01-10",
		EndDate:   "2025-01-15",
		Status:    "occupied",
	}}, logger.Discard())

	rec := serve(h, bookingID, "guest@example.com")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"occupied"`)
	assert.Contains(t, rec.Body.String(), `"roomId":"room-101"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(fakeService{}, logger.Discard()), "abc", "u").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(NewHandler(fakeService{}, logger.Discard()), bookingID, "").Code)

	h := NewHandler(fakeService{err: bookings.ErrBookingNotFound}, logger.Discard())
	assert.Equal(t, http.StatusNotFound, serve(h, bookingID, "u").Code)

	h = NewHandler(fakeService{err: bookings.ErrAccessDenied}, logger.Discard())
	assert.Equal(t, http.StatusForbidden, serve(h, bookingID, "u").Code)

	h = NewHandler(fakeService{err: bookings.ErrInternal}, logger.Discard())
	assert.Equal(t, http.StatusInternalServerError, serve(h, bookingID, "u").Code)
}
