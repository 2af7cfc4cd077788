package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// ErrInvalidRange is matched by every InvalidRangeError
var ErrInvalidRange = errors.New("invalid date range")

// InvalidRangeError is returned when a DateRange cannot be constructed
type InvalidRangeError struct {
	Start  types.Date
	End    types.Date
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range [%s, %s]: %s", e.Start, e.End, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRange) work for wrapped InvalidRangeError values
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// DateRange is an inclusive interval of calendar days.
// The zero value is not a valid range; use NewDateRange.
type DateRange struct {
	start types.Date
	end   types.Date
}

// NewDateRange validates start <= end and returns the range
func NewDateRange(start, end types.Date) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, &InvalidRangeError{Start: start, End: end, Reason: "both dates are required"}
	}
	if start.After(end) {
		return DateRange{}, &InvalidRangeError{Start: start, End: end, Reason: "end is before start"}
	}
	return DateRange{start: start, end: end}, nil
}

// ParseDateRange parses both boundaries and builds the range.
// A parse failure is reported as an InvalidRangeError wrapping the date error.
func ParseDateRange(from, to string) (DateRange, error) {
	start, err := types.ParseDate(from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: from: %w", ErrInvalidRange, err)
	}
	end, err := types.ParseDate(to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: to: %w", ErrInvalidRange, err)
	}
	return NewDateRange(start, end)
}

// MustDateRange is NewDateRange that panics on error, for tests and fixtures
func MustDateRange(start, end string) DateRange {
	r, err := ParseDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Start() types.Date { return r.start }
func (r DateRange) End() types.Date   { return r.end }

// IsZero reports whether r was never constructed
func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Overlaps is inclusive on both ends: ranges sharing a boundary day overlap,
// so a checkout day can't be booked by the next guest.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

// Contains reports start <= day <= end
func (r DateRange) Contains(day types.Date) bool {
	return !day.Before(r.start) && !day.After(r.end)
}

// Nights number of nights between check-in and check-out
func (r DateRange) Nights() int {
	return r.start.DaysUntil(r.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s]", r.start, r.end)
}
