package room_stream

import (
	"github.com/m04kA/SMC-HotelBooking/internal/service/roomevents"
)

// EventSubscriber источник событий бронирований номера (*roomevents.Hub)
type EventSubscriber interface {
	Subscribe(roomID string, handler roomevents.Handler) *roomevents.Subscription
}

// StreamTracker учитывает открытые подписки (метрики); может быть nil
type StreamTracker interface {
	StreamSubscribed()
	StreamUnsubscribed()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
