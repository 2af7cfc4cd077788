package roomevents

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

// Handler получает события бронирований номера.
// Вызывается синхронно из Publish, поэтому не должен блокироваться надолго.
type Handler func(event domain.BookingEvent)

// Hub рассылает события бронирований подписчикам конкретного номера
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	rooms  map[string]map[uint64]Handler
}

// NewHub создает пустой hub
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[uint64]Handler),
	}
}

// Subscription подписка на события одного номера
type Subscription struct {
	hub    *Hub
	roomID string
	id     uint64
	once   sync.Once
}

// Subscribe подписывает handler на события номера roomID
func (h *Hub) Subscribe(roomID string, handler Handler) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[uint64]Handler)
		h.rooms[roomID] = subs
	}
	subs[h.nextID] = handler

	return &Subscription{hub: h, roomID: roomID, id: h.nextID}
}

// Unsubscribe отменяет подписку. Повторный вызов ничего не делает.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s.roomID, s.id)
	})
}

func (h *Hub) remove(roomID string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

// Publish доставляет событие всем подписчикам номера события
func (h *Hub) Publish(event domain.BookingEvent) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.rooms[event.RoomID]))
	for _, handler := range h.rooms[event.RoomID] {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	// обработчики вызываются без блокировки: подписчик может отписаться из handler
	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribers количество подписчиков номера
func (h *Hub) Subscribers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Notify публикует событие в локальный hub. Используется, когда LISTEN/NOTIFY выключен.
func (h *Hub) Notify(_ context.Context, event domain.BookingEvent) error {
	h.Publish(event)
	return nil
}
