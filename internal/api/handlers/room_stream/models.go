package room_stream

import (
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

// EventMessage сообщение, отправляемое клиенту по websocket
type EventMessage struct {
	Type       string `json:"type"` // booking.created / booking.cancelled
	RoomID     string `json:"roomId"`
	BookingID  string `json:"bookingId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	OccurredAt string `json:"occurredAt"`
}

// FromDomainEvent конвертирует domain.BookingEvent в сообщение
func FromDomainEvent(e domain.BookingEvent) EventMessage {
	return EventMessage{
		Type:       string(e.Type),
		RoomID:     e.RoomID,
		BookingID:  e.BookingID,
		StartDate:  e.Range.Start().String(),
		EndDate:    e.Range.End().String(),
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339),
	}
}
