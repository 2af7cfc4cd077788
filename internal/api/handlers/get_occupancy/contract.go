package get_occupancy

import (
	"context"

	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

type BookingService interface {
	Occupancy(ctx context.Context, ownerID string, day types.Date) (*models.OccupancyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
