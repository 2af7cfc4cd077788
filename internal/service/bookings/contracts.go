package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	ListByRoomOwnerOn(ctx context.Context, ownerID string, day types.Date) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// RoomServiceClient интерфейс для получения номера (владелец номера)
type RoomServiceClient interface {
	GetRoom(ctx context.Context, roomID string) (*roomservice.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события бронирований номера
type EventPublisher interface {
	Notify(ctx context.Context, event domain.BookingEvent) error
}

// MetricsRecorder учитывает отмены
type MetricsRecorder interface {
	RecordBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
