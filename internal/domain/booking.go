package domain

import (
	"time"

	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Booking represents a confirmed room booking
type Booking struct {
	ID         string
	RoomID     string
	UserID     string // owner of the booking (the guest's account)
	Range      DateRange
	GuestName  string
	GuestCount int

	// Denormalized data for history
	RoomTitle   string
	RoomOwnerID string // admin account that manages the room

	CreatedAt time.Time
}

// Classify returns the lifecycle bucket of the booking on the given day
func (b *Booking) Classify(today types.Date) Classification {
	return Classify(b.Range, today)
}

// CanBeCancelled returns true while the stay has not started yet
func (b *Booking) CanBeCancelled(today types.Date) bool {
	return b.Classify(today) == Upcoming
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// Ranges extracts the date ranges of bookings, keeping order
func Ranges(bookings []*Booking) []DateRange {
	ranges := make([]DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, b.Range)
	}
	return ranges
}

// BookingEventType type of a change in a room's bookings
type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// BookingEvent is published after a booking of a room changes
type BookingEvent struct {
	Type       BookingEventType
	RoomID     string
	BookingID  string
	Range      DateRange
	OccurredAt time.Time
}
