package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBooking/internal/infra/storage/booking"
	roomClient "github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
	"github.com/m04kA/SMC-HotelBooking/pkg/metrics"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	roomClient   RoomServiceClient
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	roomClient RoomServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	recorder MetricsRecorder,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomClient:   roomClient,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      recorder,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под advisory lock номера, поэтому два конкурентных запроса на пересекающиеся даты
// не могут оба завершиться успешно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, room=%s, start=%s, end=%s, guests=%d",
		req.UserID, req.RoomID, req.StartDate, req.EndDate, req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.record(metrics.BookingInvalid)
		return nil, err
	}

	stay, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid range: %v", err)
		uc.record(metrics.BookingInvalid)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	// 2. "Сегодня" считается в часовом поясе отеля
	today := types.DateOf(uc.timeProvider.Now().In(uc.cfg.Location))
	if err := validateStay(stay, today); err != nil {
		uc.logger.Warn("CreateBooking: stay validation failed: %v", err)
		uc.record(metrics.BookingInvalid)
		return nil, err
	}

	// 3. Получаем номер
	room, err := uc.roomClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomClient.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
			uc.record(metrics.BookingInvalid)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
		uc.record(metrics.BookingFailed)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 4. Проверяем вместимость
	if err := validateGuests(req.GuestCount, room, uc.cfg.MaxGuests); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		uc.record(metrics.BookingInvalid)
		return nil, err
	}

	var result *domain.Booking

	storeCtx, cancel := context.WithTimeout(ctx, uc.cfg.StoreTimeout)
	defer cancel()

	// 5. Проверка и вставка в сериализуемой транзакции (повторяется при serialization failure)
	err = uc.txManager.DoSerializable(storeCtx, func(txCtx context.Context) error {
		// 5.1. Блокировка номера до конца транзакции
		if err := uc.bookingRepo.LockRoom(txCtx, req.RoomID); err != nil {
			return fmt.Errorf("%w: failed to lock room: %w", ErrInternal, err)
		}

		// 5.2. Существующие бронирования номера, отсортированные по дате заезда
		existing, err := uc.bookingRepo.ListByRoom(txCtx, req.RoomID)
		if err != nil {
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		// 5.3. Проверяем пересечения
		decision := domain.CanBook(domain.Ranges(existing), stay)
		if !decision.Accepted {
			return fmt.Errorf("%w: %w", ErrConflict, decision.Err())
		}

		// 5.4. Сохраняем бронирование с денормализацией названия и администратора номера
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			RoomID:      req.RoomID,
			UserID:      req.UserID,
			Range:       stay,
			GuestName:   strings.TrimSpace(req.GuestName),
			GuestCount:  req.GuestCount,
			RoomTitle:   room.Title,
			RoomOwnerID: room.OwnerID,
		})
		if err != nil {
			// exclusion constraint сработал, если проверку обошла запись без блокировки
			if errors.Is(err, bookingRepo.ErrConflict) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			uc.logger.Warn("CreateBooking: conflict for room=%s: %v", req.RoomID, err)
			uc.record(metrics.BookingConflict)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			uc.record(metrics.BookingFailed)
			return nil, err
		default:
			// ошибки транзакции и таймаут хранилища
			uc.logger.Error("CreateBooking: transaction failed for room=%s: %v", req.RoomID, err)
			uc.record(metrics.BookingFailed)
			return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
		}
	}

	uc.record(metrics.BookingCreated)
	uc.logger.Info("CreateBooking: successfully created booking id=%s for room=%s %s",
		result.ID, result.RoomID, result.Range)

	// 6. Уведомляем подписчиков номера; бронирование уже сохранено
	event := domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		RoomID:     result.RoomID,
		BookingID:  result.ID,
		Range:      result.Range,
		OccurredAt: uc.timeProvider.Now(),
	}
	if err := uc.publisher.Notify(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", result.ID, err)
	}

	return &Response{
		ID:         result.ID,
		RoomID:     result.RoomID,
		UserID:     result.UserID,
		StartDate:  result.Range.Start(),
		EndDate:    result.Range.End(),
		Nights:     result.Range.Nights(),
		GuestName:  result.GuestName,
		GuestCount: result.GuestCount,
		Status:     result.Classify(today).String(),
		RoomTitle:  result.RoomTitle,
		CreatedAt:  result.CreatedAt,
	}, nil
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(result)
	}
}
