package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRange       = "дата заезда не может быть позже даты выезда"
	msgDateInPast         = "дата заезда не может быть в прошлом"
	msgStayTooLong        = "слишком длинный период проживания"
	msgTooManyGuests      = "количество гостей превышает вместимость номера"
	msgRoomNotFound       = "номер не найден"
	msgConflict           = "номер уже забронирован на выбранные даты"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/{roomId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms/{roomId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/{roomId}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /rooms/{roomId}/bookings - Validation failed: room_id=%s, error=%v", roomID, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(userID, roomID)
	if err != nil {
		h.logger.Warn("POST /rooms/{roomId}/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Conflict: room_id=%s, user_id=%s, error=%v", roomID, userID, err)
			handlers.RespondJSON(w, http.StatusConflict, conflictResponse(err))

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Room not found: room_id=%s", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrInvalidRange):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Invalid range: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Date in past: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrStayTooLong):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Stay too long: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, createBooking.ErrTooManyGuests):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Too many guests: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgTooManyGuests)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /rooms/{roomId}/bookings - Invalid input: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /rooms/{roomId}/bookings - Failed to create booking: room_id=%s, user_id=%s, error=%v",
				roomID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/{roomId}/bookings - Booking created successfully: booking_id=%s, room_id=%s, user_id=%s",
		result.ID, roomID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// conflictResponse добавляет пересекающийся период, если он известен
func conflictResponse(err error) ConflictResponse {
	resp := ConflictResponse{Error: msgConflict}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		resp.ConflictingStartDate = conflict.Conflicting.Start().String()
		resp.ConflictingEndDate = conflict.Conflicting.End().String()
	}

	return resp
}
