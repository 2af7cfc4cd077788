package roomservice

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("roomservice client: room not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("roomservice client: internal error")

	// ErrUnavailable возвращается, когда RoomService недоступен (сеть, таймаут, 5xx шлюза)
	ErrUnavailable = errors.New("roomservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("roomservice client: invalid response")
)
