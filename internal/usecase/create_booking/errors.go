package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrInvalidRange возвращается, когда дата заезда позже даты выезда
	ErrInvalidRange = errors.New("create_booking: invalid date range")

	// ErrDateInPast возвращается, когда заезд раньше сегодняшнего дня в часовом поясе отеля
	ErrDateInPast = errors.New("create_booking: start date is in the past")

	// ErrStayTooLong возвращается, когда проживание превышает допустимое число ночей
	ErrStayTooLong = errors.New("create_booking: stay is too long")

	// ErrTooManyGuests возвращается, когда гостей больше вместимости номера
	ErrTooManyGuests = errors.New("create_booking: too many guests for this room")

	// ErrConflict возвращается, когда период пересекается с существующим бронированием номера
	ErrConflict = errors.New("create_booking: dates are already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase (в том числе ошибках хранилища)
	ErrInternal = errors.New("create_booking: internal error")
)
