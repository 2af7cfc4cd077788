package get_room_bookings

import (
	"context"

	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListRoomBookings(ctx context.Context, roomID string, requesterID string) (*models.GroupedBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
