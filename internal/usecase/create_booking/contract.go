package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockRoom(ctx context.Context, roomID string) error
	ListByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RoomServiceClient интерфейс клиента для RoomService
type RoomServiceClient interface {
	GetRoom(ctx context.Context, roomID string) (*roomservice.Room, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события бронирований номера
type EventPublisher interface {
	Notify(ctx context.Context, event domain.BookingEvent) error
}

// MetricsRecorder учитывает результаты попыток бронирования
type MetricsRecorder interface {
	RecordBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
