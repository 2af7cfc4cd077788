package roomservice

// Room модель номера из RoomService
type Room struct {
	ID        string `json:"roomId"`
	Title     string `json:"title"`
	MaxGuests int    `json:"guests"` // 0 - вместимость не указана
	OwnerID   string `json:"ownerEmail"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
