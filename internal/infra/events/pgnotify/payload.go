package pgnotify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// payload формат события в канале NOTIFY (не более 8000 байт)
type payload struct {
	Type       string     `json:"type"`
	RoomID     string     `json:"roomId"`
	BookingID  string     `json:"bookingId"`
	StartDate  types.Date `json:"startDate"`
	EndDate    types.Date `json:"endDate"`
	OccurredAt time.Time  `json:"occurredAt"`
}

func encode(event domain.BookingEvent) (string, error) {
	data, err := json.Marshal(payload{
		Type:       string(event.Type),
		RoomID:     event.RoomID,
		BookingID:  event.BookingID,
		StartDate:  event.Range.Start(),
		EndDate:    event.Range.End(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}
	return string(data), nil
}

func decode(raw string) (domain.BookingEvent, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.BookingEvent{}, fmt.Errorf("%w: %v", ErrDecodePayload, err)
	}

	if p.RoomID == "" {
		return domain.BookingEvent{}, fmt.Errorf("%w: roomId is empty", ErrDecodePayload)
	}

	eventType := domain.BookingEventType(p.Type)
	if eventType != domain.EventBookingCreated && eventType != domain.EventBookingCancelled {
		return domain.BookingEvent{}, fmt.Errorf("%w: unknown event type %q", ErrDecodePayload, p.Type)
	}

	r, err := domain.NewDateRange(p.StartDate, p.EndDate)
	if err != nil {
		return domain.BookingEvent{}, fmt.Errorf("%w: %v", ErrDecodePayload, err)
	}

	return domain.BookingEvent{
		Type:       eventType,
		RoomID:     p.RoomID,
		BookingID:  p.BookingID,
		Range:      r,
		OccurredAt: p.OccurredAt,
	}, nil
}
