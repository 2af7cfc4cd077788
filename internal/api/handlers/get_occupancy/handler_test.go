package get_occupancy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBooking/pkg/logger"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

type fakeService struct {
	resp  *models.OccupancyResponse
	err   error
	owner string
	day   types.Date
	calls int
}

func (f *fakeService) Occupancy(_ context.Context, ownerID string, day types.Date) (*models.OccupancyResponse, error) {
	f.calls++
	f.owner, f.day = ownerID, day
	return f.resp, f.err
}

func serve(h *Handler, query, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/occupancy"+query, nil)
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{resp: &models.OccupancyResponse{
		Date:          "2025-01-12",
		OccupiedRooms: 3,
		CheckIns:      1,
		CheckOuts:     2,
		Guests:        5,
	}}
	h := NewHandler(svc, logger.Discard())

	rec := serve(h, "?date=12-01-2025", "admin@hotel.com")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-01-12","occupiedRooms":3,"checkIns":1,"checkOuts":2,"guests":5}`, rec.Body.String())
	assert.Equal(t, "admin@hotel.com", svc.owner)
	assert.Equal(t, types.MustParseDate("2025-01-12"), svc.day)
}

func TestHandle_DefaultsToToday(t *testing.T) {
	svc := &fakeService{resp: &models.OccupancyResponse{Date: "2025-01-12"}}
	h := NewHandler(svc, logger.Discard())

	require.Equal(t, http.StatusOK, serve(h, "", "admin@hotel.com").Code)
	assert.True(t, svc.day.IsZero())
}

func TestHandle_Errors(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.Discard())

	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "").Code)

	rec := serve(h, "?date=tomorrow", "admin@hotel.com")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DD-MM-YYYY")
	assert.Zero(t, svc.calls)

	h = NewHandler(&fakeService{err: bookings.ErrInternal}, logger.Discard())
	assert.Equal(t, http.StatusInternalServerError, serve(h, "", "admin@hotel.com").Code)

	h = NewHandler(&fakeService{err: bookings.ErrInvalidInput}, logger.Discard())
	assert.Equal(t, http.StatusBadRequest, serve(h, "", "admin@hotel.com").Code)
}
