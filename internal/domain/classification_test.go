package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

func TestClassify_ExactlyOneBucket(t *testing.T) {
	for start := 1; start <= 15; start++ {
		for end := start; end <= 15; end++ {
			r := rng(t, start, end)
			for today := -2; today <= 18; today++ {
				got := Classify(r, day(today))

				isUpcoming := day(today).Before(r.Start())
				isOccupied := r.Contains(day(today))
				isPast := day(today).After(r.End())

				matches := 0
				for _, b := range []bool{isUpcoming, isOccupied, isPast} {
					if b {
						matches++
					}
				}
				require.Equal(t, 1, matches, "range=%s today=%s", r, day(today))

				switch {
				case isUpcoming:
					require.Equal(t, Upcoming, got)
				case isOccupied:
					require.Equal(t, Occupied, got)
				case isPast:
					require.Equal(t, Past, got)
				}
			}
		}
	}
}

func TestClassify_Scenarios(t *testing.T) {
	r := MustDateRange("2025-01-10", "2025-01-15")

	tests := []struct {
		today string
		want  Classification
	}{
		{today: "2025-01-09", want: Upcoming},
		{today: "2025-01-10", want: Occupied},
		{today: "2025-01-12", want: Occupied},
		{today: "2025-01-15", want: Occupied},
		{today: "2025-01-16", want: Past},
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(r, types.MustParseDate(tt.today)))
		})
	}
}

func TestParseClassification(t *testing.T) {
	for _, c := range Classifications {
		parsed, err := ParseClassification(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseClassification(" Occupied ")
	require.NoError(t, err)
	assert.Equal(t, Occupied, parsed)

	_, err = ParseClassification("cancelled")
	assert.Error(t, err)
}

func TestGroupByClassification(t *testing.T) {
	today := types.MustParseDate("2025-01-12")
	past := &Booking{ID: "past", Range: MustDateRange("2025-01-01", "2025-01-05")}
	current := &Booking{ID: "current", Range: MustDateRange("2025-01-10", "2025-01-15")}
	future1 := &Booking{ID: "future-1", Range: MustDateRange("2025-01-20", "2025-01-22")}
	future2 := &Booking{ID: "future-2", Range: MustDateRange("2025-01-13", "2025-01-14")}

	groups := GroupByClassification([]*Booking{past, future1, current, future2}, today)

	assert.Equal(t, []*Booking{current}, groups[Occupied])
	assert.Equal(t, []*Booking{future1, future2}, groups[Upcoming])
	assert.Equal(t, []*Booking{past}, groups[Past])

	empty := GroupByClassification(nil, today)
	require.Len(t, empty, 3)
	for _, c := range Classifications {
		assert.NotNil(t, empty[c])
		assert.Empty(t, empty[c])
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	b := &Booking{Range: MustDateRange("2025-01-10", "2025-01-15")}

	assert.True(t, b.CanBeCancelled(types.MustParseDate("2025-01-09")))
	assert.False(t, b.CanBeCancelled(types.MustParseDate("2025-01-10")))
	assert.False(t, b.CanBeCancelled(types.MustParseDate("2025-01-20")))
}
