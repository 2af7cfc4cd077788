package check_availability

import (
	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Request запрос проверки доступности номера на период
type Request struct {
	RoomID    string
	StartDate types.Date
	EndDate   types.Date
}

// Response результат проверки без создания бронирования
type Response struct {
	RoomID      string
	Range       domain.DateRange
	Available   bool
	Conflicting *domain.DateRange // Первый пересекающийся период, если номер занят
}
