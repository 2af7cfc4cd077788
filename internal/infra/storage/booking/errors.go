package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrConflict возвращается, когда ограничение исключения отклонило пересекающийся диапазон
	ErrConflict = errors.New("booking.repository: overlapping booking exists")

	// ErrDuplicateID возвращается при повторной вставке бронирования с тем же ID
	ErrDuplicateID = errors.New("booking.repository: duplicate booking id")

	// ErrTransaction возвращается, когда операция требует транзакцию, а ее нет
	ErrTransaction = errors.New("booking.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
