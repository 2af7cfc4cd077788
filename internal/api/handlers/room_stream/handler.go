package room_stream

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	// bufferSize события сверх буфера медленному клиенту не доставляются
	bufferSize = 32
)

type Handler struct {
	subscriber EventSubscriber
	tracker    StreamTracker
	upgrader   websocket.Upgrader
	logger     Logger
}

// NewHandler создает handler. tracker может быть nil.
func NewHandler(subscriber EventSubscriber, tracker StreamTracker, logger Logger) *Handler {
	return &Handler{
		subscriber: subscriber,
		tracker:    tracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// приложение ходит через API gateway, Origin проверяет он
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/bookings/stream (websocket)
// Клиент получает события booking.created и booking.cancelled номера, пока соединение открыто.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту ошибкой
		h.logger.Warn("GET /rooms/{roomId}/bookings/stream - Upgrade failed: room_id=%s, error=%v", roomID, err)
		return
	}
	defer conn.Close()

	if h.tracker != nil {
		h.tracker.StreamSubscribed()
		defer h.tracker.StreamUnsubscribed()
	}

	events := make(chan domain.BookingEvent, bufferSize)
	sub := h.subscriber.Subscribe(roomID, func(e domain.BookingEvent) {
		select {
		case events <- e:
		default:
			h.logger.Warn("GET /rooms/{roomId}/bookings/stream - Slow client, event dropped: room_id=%s, booking_id=%s",
				roomID, e.BookingID)
		}
	})
	defer sub.Unsubscribe()

	h.logger.Info("GET /rooms/{roomId}/bookings/stream - Client subscribed: room_id=%s, remote=%s", roomID, r.RemoteAddr)

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			h.logger.Info("GET /rooms/{roomId}/bookings/stream - Client disconnected: room_id=%s", roomID)
			return

		case e := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(FromDomainEvent(e)); err != nil {
				h.logger.Warn("GET /rooms/{roomId}/bookings/stream - Write failed: room_id=%s, error=%v", roomID, err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.logger.Warn("GET /rooms/{roomId}/bookings/stream - Ping failed: room_id=%s, error=%v", roomID, err)
				return
			}
		}
	}
}

// readLoop читает управляющие кадры до закрытия соединения клиентом
func (h *Handler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("GET /rooms/{roomId}/bookings/stream - Unexpected close: %v", err)
			}
			return
		}
	}
}
