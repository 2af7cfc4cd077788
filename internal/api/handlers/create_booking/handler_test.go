package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBooking/pkg/logger"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(h *Handler, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms/room-101/bookings", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"roomId": "room-101"})
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"startDate":"2025-01-10","endDate":"15-01-2025","guestName":"Ivan Petrov","guestCount":2}`

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:         "b-1",
		RoomID:     "room-101",
		UserID:     "guest@example.com",
		StartDate:  types.MustParseDate("2025-01-10"),
		EndDate:    types.MustParseDate("2025-01-15"),
		Nights:     5,
		GuestName:  "Ivan Petrov",
		GuestCount: 2,
		Status:     "upcoming",
		RoomTitle:  "Deluxe Suite",
		CreatedAt:  time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
	}}
	h := NewHandler(uc, logger.Discard())

	rec := doRequest(h, "guest@example.com", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"b-1","roomId":"room-101","userId":"guest@example.com","roomTitle":"Deluxe Suite",
		"startDate":"2025-01-10","endDate":"2025-01-15","nights":5,"guestName":"Ivan Petrov","guestCount":2,
		"status":"upcoming","createdAt":"2025-01-01T09:00:00Z"}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, "room-101", uc.got.RoomID)
	assert.Equal(t, "guest@example.com", uc.got.UserID)
	assert.Equal(t, types.MustParseDate("2025-01-15"), uc.got.EndDate)
}

func TestHandle_Conflict(t *testing.T) {
	conflict := &domain.ConflictError{
		Proposed:    domain.MustDateRange("2025-01-15", "2025-01-20"),
		Conflicting: domain.MustDateRange("2025-01-10", "2025-01-15"),
	}
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", createBooking.ErrConflict, conflict)}
	h := NewHandler(uc, logger.Discard())

	rec := doRequest(h, "guest@example.com", validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"номер уже забронирован на выбранные даты",
		"conflictingStartDate":"2025-01-10","conflictingEndDate":"2025-01-15"}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		ucErr      error
		wantStatus int
	}{
		{name: "no user", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "broken json", userID: "u", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", userID: "u", body: `{"startDate":"2025-01-10","roomId":"x"}`, wantStatus: http.StatusBadRequest},
		{
			name:       "bad date",
			userID:     "u",
			body:       `{"startDate":"2025/01/10","endDate":"2025-01-15","guestName":"A","guestCount":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero guests",
			userID:     "u",
			body:       `{"startDate":"2025-01-10","endDate":"2025-01-15","guestName":"A","guestCount":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{name: "invalid range", userID: "u", body: validBody, ucErr: createBooking.ErrInvalidRange, wantStatus: http.StatusBadRequest},
		{name: "in the past", userID: "u", body: validBody, ucErr: createBooking.ErrDateInPast, wantStatus: http.StatusBadRequest},
		{name: "too many guests", userID: "u", body: validBody, ucErr: createBooking.ErrTooManyGuests, wantStatus: http.StatusBadRequest},
		{name: "room not found", userID: "u", body: validBody, ucErr: createBooking.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "store conflict", userID: "u", body: validBody, ucErr: createBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", userID: "u", body: validBody, ucErr: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.ucErr}
			h := NewHandler(uc, logger.Discard())

			rec := doRequest(h, tt.userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
