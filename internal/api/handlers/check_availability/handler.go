package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-HotelBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

const (
	msgMissingDates = "параметры from и to обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD или DD-MM-YYYY"
	msgInvalidRange = "дата from не может быть позже даты to"
	msgInvalidInput = "некорректный ID номера"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: from (required), to (required), YYYY-MM-DD или DD-MM-YYYY
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]
	query := r.URL.Query()

	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /rooms/{roomId}/availability - Missing dates: room_id=%s", roomID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	from, err := types.ParseDate(fromStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{roomId}/availability - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := types.ParseDate(toStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{roomId}/availability - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		RoomID:    roomID,
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidRange):
			h.logger.Warn("GET /rooms/{roomId}/availability - Invalid range: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{roomId}/availability - Invalid input: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /rooms/{roomId}/availability - Failed to check availability: room_id=%s, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{roomId}/availability - room_id=%s, range=%s, available=%t",
		roomID, result.Range, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
