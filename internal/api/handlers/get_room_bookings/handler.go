package get_room_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings"
)

const (
	msgInvalidRoomID = "некорректный ID номера"
	msgMissingUserID = "отсутствует ID пользователя"
	msgRoomNotFound  = "номер не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/rooms/{roomId}/bookings
// Бронирования номера по группам: occupied, upcoming, past. Только для администратора номера.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/{roomId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListRoomBookings(r.Context(), roomID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{roomId}/bookings - Invalid room ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoomID)

		case errors.Is(err, bookings.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{roomId}/bookings - Room not found: room_id=%s", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /rooms/{roomId}/bookings - Access denied: room_id=%s, user_id=%s", roomID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /rooms/{roomId}/bookings - Failed to get bookings: room_id=%s, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{roomId}/bookings - Bookings retrieved successfully: room_id=%s, count=%d",
		roomID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
