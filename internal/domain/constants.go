package domain

// Business validation constants
const (
	MinGuestCount        = 1
	DefaultMaxGuests     = 10
	MaxGuestNameLength   = 100
	MaxRoomIDLength      = 64
	MaxStayNights        = 365
	DefaultHotelTimezone = "UTC"
)
