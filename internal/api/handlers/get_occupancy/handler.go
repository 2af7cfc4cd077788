package get_occupancy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD или DD-MM-YYYY"
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/occupancy
// Сводка по номерам администратора (X-User-ID) на день.
// Query params: date (optional, по умолчанию сегодня в часовом поясе отеля)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/occupancy - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var day types.Date
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := types.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /bookings/occupancy - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		day = parsed
	}

	result, err := h.service.Occupancy(r.Context(), ownerID, day)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/occupancy - Invalid input: owner_id=%s, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /bookings/occupancy - Failed to get occupancy: owner_id=%s, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/occupancy - Occupancy retrieved: owner_id=%s, date=%s, occupied=%d",
		ownerID, result.Date, result.OccupiedRooms)
	handlers.RespondJSON(w, http.StatusOK, result)
}
