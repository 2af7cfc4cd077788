package roomevents

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

func event(roomID, bookingID string) domain.BookingEvent {
	return domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		RoomID:     roomID,
		BookingID:  bookingID,
		Range:      domain.MustDateRange("2025-01-10", "2025-01-15"),
		OccurredAt: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHub_PublishOnlyToRoomSubscribers(t *testing.T) {
	hub := NewHub()

	var got101, got102 []string
	sub101 := hub.Subscribe("room-101", func(e domain.BookingEvent) { got101 = append(got101, e.BookingID) })
	hub.Subscribe("room-102", func(e domain.BookingEvent) { got102 = append(got102, e.BookingID) })

	hub.Publish(event("room-101", "b-1"))
	hub.Publish(event("room-102", "b-2"))
	hub.Publish(event("room-103", "b-3"))

	assert.Equal(t, []string{"b-1"}, got101)
	assert.Equal(t, []string{"b-2"}, got102)

	sub101.Unsubscribe()
	hub.Publish(event("room-101", "b-4"))

	assert.Equal(t, []string{"b-1"}, got101)
	assert.Equal(t, 0, hub.Subscribers("room-101"))
	assert.Equal(t, 1, hub.Subscribers("room-102"))
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	first := hub.Subscribe("room-101", func(domain.BookingEvent) {})
	hub.Subscribe("room-101", func(domain.BookingEvent) {})

	first.Unsubscribe()
	first.Unsubscribe()

	assert.Equal(t, 1, hub.Subscribers("room-101"))
}

func TestHub_UnsubscribeFromHandler(t *testing.T) {
	hub := NewHub()

	calls := 0
	var sub *Subscription
	sub = hub.Subscribe("room-101", func(domain.BookingEvent) {
		calls++
		sub.Unsubscribe()
	})

	hub.Publish(event("room-101", "b-1"))
	hub.Publish(event("room-101", "b-2"))

	assert.Equal(t, 1, calls)
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub()

	var (
		mu       sync.Mutex
		received int
		wg       sync.WaitGroup
	)

	subs := make([]*Subscription, 0, 10)
	for i := 0; i < 10; i++ {
		subs = append(subs, hub.Subscribe("room-101", func(domain.BookingEvent) {
			mu.Lock()
			received++
			mu.Unlock()
		}))
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(event("room-101", "b"))
		}()
	}
	wg.Wait()

	require.Equal(t, 500, received)

	for _, s := range subs {
		s.Unsubscribe()
	}
	assert.Equal(t, 0, hub.Subscribers("room-101"))
}

func TestHub_Notify(t *testing.T) {
	hub := NewHub()

	var got []domain.BookingEvent
	hub.Subscribe("room-101", func(e domain.BookingEvent) { got = append(got, e) })

	require.NoError(t, hub.Notify(context.Background(), event("room-101", "b-1")))
	require.Len(t, got, 1)
	assert.Equal(t, event("room-101", "b-1"), got[0])
}
