package get_user_bookings

import (
	"context"

	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.GroupedBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
