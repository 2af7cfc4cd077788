package domain

import "github.com/m04kA/SMC-HotelBooking/pkg/types"

// Occupancy is the front-desk picture of one day
type Occupancy struct {
	Day           types.Date
	OccupiedRooms int // rooms with a stay covering the day
	CheckIns      int // stays starting on the day
	CheckOuts     int // stays ending on the day
	Guests        int // guests of the occupying stays
}

// Summarize counts the occupancy of day over bookings of any rooms.
// Bookings that do not cover the day are ignored, so the caller may pass a wider list.
func Summarize(bookings []*Booking, day types.Date) Occupancy {
	occ := Occupancy{Day: day}
	rooms := make(map[string]struct{})

	for _, b := range bookings {
		if Classify(b.Range, day) != Occupied {
			continue
		}

		// брони одной комнаты не пересекаются, но считаем комнату один раз
		if _, seen := rooms[b.RoomID]; !seen {
			rooms[b.RoomID] = struct{}{}
			occ.OccupiedRooms++
		}
		occ.Guests += b.GuestCount

		if b.Range.Start().Equal(day) {
			occ.CheckIns++
		}
		if b.Range.End().Equal(day) {
			occ.CheckOuts++
		}
	}

	return occ
}
