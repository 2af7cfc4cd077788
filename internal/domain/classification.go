package domain

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Classification is the lifecycle bucket of a booking relative to a given day.
// It is derived on demand and never persisted.
type Classification int

const (
	Upcoming Classification = iota + 1
	Occupied
	Past
)

// Classifications in display order
var Classifications = []Classification{Occupied, Upcoming, Past}

func (c Classification) String() string {
	switch c {
	case Upcoming:
		return "upcoming"
	case Occupied:
		return "occupied"
	case Past:
		return "past"
	default:
		return fmt.Sprintf("classification(%d)", int(c))
	}
}

// ParseClassification parses the lower-case name produced by String
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upcoming":
		return Upcoming, nil
	case "occupied":
		return Occupied, nil
	case "past":
		return Past, nil
	default:
		return 0, fmt.Errorf("unknown classification %q", s)
	}
}

// Classify buckets r relative to today:
//
//	today < start         -> Upcoming
//	start <= today <= end -> Occupied
//	today > end           -> Past
func Classify(r DateRange, today types.Date) Classification {
	if today.Before(r.start) {
		return Upcoming
	}
	if today.After(r.end) {
		return Past
	}
	return Occupied
}

// GroupByClassification splits bookings into buckets, preserving input order inside each bucket.
// Every classification key is present, possibly with an empty slice.
func GroupByClassification(bookings []*Booking, today types.Date) map[Classification][]*Booking {
	groups := make(map[Classification][]*Booking, len(Classifications))
	for _, c := range Classifications {
		groups[c] = make([]*Booking, 0)
	}

	for _, b := range bookings {
		c := b.Classify(today)
		groups[c] = append(groups[c], b)
	}

	return groups
}
