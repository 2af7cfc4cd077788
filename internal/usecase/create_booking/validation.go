package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.RoomID == "" || len(req.RoomID) > domain.MaxRoomIDLength {
		return fmt.Errorf("%w: roomID must be 1..%d characters", ErrInvalidInput, domain.MaxRoomIDLength)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName must be at most %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	return nil
}

// validateStay проверяет период проживания относительно сегодняшнего дня отеля
func validateStay(r domain.DateRange, today types.Date) error {
	if r.Start().Before(today) {
		return fmt.Errorf("%w: start %s is before today %s", ErrDateInPast, r.Start(), today)
	}

	if r.Nights() > domain.MaxStayNights {
		return fmt.Errorf("%w: %d nights, at most %d allowed", ErrStayTooLong, r.Nights(), domain.MaxStayNights)
	}

	return nil
}

// validateGuests проверяет число гостей по вместимости номера.
// Если RoomService не вернул вместимость, используется ограничение из конфигурации.
func validateGuests(guestCount int, room *roomservice.Room, defaultMax int) error {
	maxGuests := defaultMax
	if room.MaxGuests > 0 {
		maxGuests = room.MaxGuests
	}

	if guestCount > maxGuests {
		return fmt.Errorf("%w: %d guests, room %s allows %d", ErrTooManyGuests, guestCount, room.ID, maxGuests)
	}

	return nil
}
