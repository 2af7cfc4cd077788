package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConflict is matched by every ConflictError
var ErrConflict = errors.New("booking conflict")

// ConflictError reports the existing range that blocks a proposed one
type ConflictError struct {
	Proposed    DateRange
	Conflicting DateRange
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("range %s overlaps existing booking %s", e.Proposed, e.Conflicting)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Decision is the result of CanBook
type Decision struct {
	Accepted    bool
	Proposed    DateRange
	Conflicting *DateRange
}

// Err returns a *ConflictError for a rejected decision and nil otherwise
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return &ConflictError{Proposed: d.Proposed, Conflicting: *d.Conflicting}
}

func accept(proposed DateRange) Decision {
	return Decision{Accepted: true, Proposed: proposed}
}

func reject(proposed, conflicting DateRange) Decision {
	return Decision{Accepted: false, Proposed: proposed, Conflicting: &conflicting}
}

// CanBook decides whether proposed may be booked next to the existing ranges of the same room.
// The caller filters existing by room. The first overlapping range rejects the proposal.
// When existing is sorted by start the scan stops at the first range starting after proposed ends.
func CanBook(existing []DateRange, proposed DateRange) Decision {
	sorted := IsSortedByStart(existing)

	for _, other := range existing {
		if sorted && other.start.After(proposed.end) {
			break
		}
		if other.Overlaps(proposed) {
			return reject(proposed, other)
		}
	}

	return accept(proposed)
}

// CanBookSorted is CanBook for a slice sorted by start whose ranges are pairwise disjoint,
// which is what the store holds for one room: then ends are sorted too and the first candidate
// is found by bisection. Input that is not sorted by start, or whose ends go backwards
// (ranges overlapping each other), is checked with the linear CanBook instead.
func CanBookSorted(sorted []DateRange, proposed DateRange) Decision {
	if !endsAscending(sorted) {
		return CanBook(sorted, proposed)
	}

	// пропускаем все диапазоны, которые закончились до начала proposed
	i := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].end.Before(proposed.start)
	})

	for ; i < len(sorted); i++ {
		other := sorted[i]
		if other.start.After(proposed.end) {
			break
		}
		if other.Overlaps(proposed) {
			return reject(proposed, other)
		}
	}

	return accept(proposed)
}

// endsAscending: starts and ends не убывают
func endsAscending(ranges []DateRange) bool {
	for i := 1; i < len(ranges); i++ {
		if ranges[i].start.Before(ranges[i-1].start) || ranges[i].end.Before(ranges[i-1].end) {
			return false
		}
	}
	return true
}

// IsSortedByStart reports whether ranges are ordered by start day
func IsSortedByStart(ranges []DateRange) bool {
	return sort.SliceIsSorted(ranges, func(i, j int) bool {
		return ranges[i].start.Before(ranges[j].start)
	})
}

// SortByStart sorts ranges in place by start day, then by end day
func SortByStart(ranges []DateRange) {
	sort.Slice(ranges, func(i, j int) bool {
		if c := ranges[i].start.Compare(ranges[j].start); c != 0 {
			return c < 0
		}
		return ranges[i].end.Before(ranges[j].end)
	})
}
