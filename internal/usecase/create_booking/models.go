package create_booking

import (
	"time"

	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Config параметры use case
type Config struct {
	Location     *time.Location // Часовой пояс отеля
	MaxGuests    int            // Ограничение, если RoomService не знает вместимость номера
	StoreTimeout time.Duration  // Таймаут транзакции с хранилищем
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID     string     // ID пользователя (из X-User-ID)
	RoomID     string     // ID номера
	StartDate  types.Date // Дата заезда (включительно)
	EndDate    types.Date // Дата выезда (включительно)
	GuestName  string     // Имя гостя
	GuestCount int        // Количество гостей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         string     // ID созданного бронирования
	RoomID     string     // ID номера
	UserID     string     // ID пользователя
	StartDate  types.Date // Дата заезда
	EndDate    types.Date // Дата выезда
	Nights     int        // Количество ночей
	GuestName  string     // Имя гостя
	GuestCount int        // Количество гостей
	Status     string     // Классификация на момент создания (upcoming / occupied)

	// Денормализованные данные
	RoomTitle string // Название номера

	CreatedAt time.Time // Время создания
}
