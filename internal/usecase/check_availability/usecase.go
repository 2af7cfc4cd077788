package check_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

// UseCase проверяет, можно ли забронировать номер на период, ничего не сохраняя.
// Результат не резервирует даты: окончательное решение принимает create_booking.
type UseCase struct {
	bookingRepo  BookingRepository
	storeTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, storeTimeout time.Duration, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// Execute выполняет проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.RoomID == "" || len(req.RoomID) > domain.MaxRoomIDLength {
		return nil, fmt.Errorf("%w: roomID must be 1..%d characters", ErrInvalidInput, domain.MaxRoomIDLength)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	stay, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid range for room=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	existing, err := uc.bookingRepo.ListByRoom(storeCtx, req.RoomID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list bookings for room=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
	}

	// репозиторий возвращает бронирования по возрастанию даты заезда
	ranges := domain.Ranges(existing)
	if !domain.IsSortedByStart(ranges) {
		domain.SortByStart(ranges)
	}
	decision := domain.CanBookSorted(ranges, stay)

	uc.logger.Info("CheckAvailability: room=%s range=%s available=%t", req.RoomID, stay, decision.Accepted)

	return &Response{
		RoomID:      req.RoomID,
		Range:       stay,
		Available:   decision.Accepted,
		Conflicting: decision.Conflicting,
	}, nil
}
