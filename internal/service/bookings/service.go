package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBooking/internal/integrations/roomservice"
	"github.com/m04kA/SMC-HotelBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBooking/pkg/metrics"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

// Config параметры сервиса
type Config struct {
	Location     *time.Location // Часовой пояс отеля, в нем вычисляется "сегодня"
	StoreTimeout time.Duration
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	roomClient   RoomServiceClient
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований. recorder может быть nil.
func NewService(
	bookingRepo BookingRepository,
	roomClient RoomServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	recorder MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
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

// Today текущий календарный день в часовом поясе отеля
func (s *Service) Today() types.Date {
	return types.DateOf(s.timeProvider.Now().In(s.cfg.Location))
}

// GetByID получает бронирование по ID с классификацией на сегодня.
// Пользователь может видеть только своё бронирование.
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !booking.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking, s.Today()), nil
}

// ListRoomBookings бронирования номера, сгруппированные по классификации (экран "Booked rooms").
// Список с данными гостей видит только администратор номера.
func (s *Service) ListRoomBookings(ctx context.Context, roomID string, requesterID string) (*models.GroupedBookingsResponse, error) {
	s.logger.Info("ListRoomBookings: fetching bookings for room=%s by user=%s", roomID, requesterID)

	if roomID == "" || len(roomID) > domain.MaxRoomIDLength {
		return nil, fmt.Errorf("%w: invalid roomID", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	room, err := s.roomClient.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomservice.ErrRoomNotFound) {
			s.logger.Warn("ListRoomBookings: room=%s not found", roomID)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("ListRoomBookings: failed to get room=%s: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListRoomBookings - room service error: %v", ErrInternal, err)
	}

	if room.OwnerID == "" || room.OwnerID != requesterID {
		s.logger.Warn("ListRoomBookings: access denied for user=%s to room=%s", requesterID, roomID)
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.ListByRoom(ctx, roomID)
	if err != nil {
		s.logger.Error("ListRoomBookings: repository error for room=%s: %v", roomID, err)
		return nil, fmt.Errorf("%w: ListRoomBookings - repository error: %v", ErrInternal, err)
	}

	today := s.Today()
	resp := models.FromDomainGroups(domain.GroupByClassification(list, today), today, 0)

	s.logger.Info("ListRoomBookings: room=%s occupied=%d upcoming=%d past=%d",
		roomID, len(resp.Occupied), len(resp.Upcoming), len(resp.Past))
	return resp, nil
}

// Occupancy сводка по номерам администратора на день (главный экран администратора):
// занятые номера, заезды, выезды, гости. Нулевой day означает сегодня.
func (s *Service) Occupancy(ctx context.Context, ownerID string, day types.Date) (*models.OccupancyResponse, error) {
	if day.IsZero() {
		day = s.Today()
	}
	s.logger.Info("Occupancy: fetching summary for owner=%s day=%s", ownerID, day)

	if ownerID == "" {
		return nil, fmt.Errorf("%w: empty ownerID", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	list, err := s.bookingRepo.ListByRoomOwnerOn(ctx, ownerID, day)
	if err != nil {
		s.logger.Error("Occupancy: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: Occupancy - repository error: %v", ErrInternal, err)
	}

	occ := domain.Summarize(list, day)

	s.logger.Info("Occupancy: owner=%s day=%s occupied=%d check_ins=%d check_outs=%d",
		ownerID, day, occ.OccupiedRooms, occ.CheckIns, occ.CheckOuts)
	return models.FromDomainOccupancy(occ), nil
}

// ListUserBookings история бронирований пользователя (экран "My bookings").
// Пользователь видит только свои бронирования. Опционально фильтрует по классификации.
func (s *Service) ListUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.GroupedBookingsResponse, error) {
	s.logger.Info("ListUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if req.UserID != req.RequesterID {
		s.logger.Warn("ListUserBookings: user=%s requested bookings of user=%s", req.RequesterID, req.UserID)
		return nil, ErrAccessDenied
	}

	var only domain.Classification
	if req.Status != nil {
		c, err := domain.ParseClassification(*req.Status)
		if err != nil {
			s.logger.Warn("ListUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		only = c
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	list, err := s.bookingRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		s.logger.Error("ListUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserBookings - repository error: %v", ErrInternal, err)
	}

	today := s.Today()
	resp := models.FromDomainGroups(domain.GroupByClassification(list, today), today, only)

	s.logger.Info("ListUserBookings: successfully fetched %d bookings for user=%s", resp.Total, req.UserID)
	return resp, nil
}

// Cancel отменяет (удаляет) бронирование.
// Отменить можно только своё бронирование и только до даты заезда.
func (s *Service) Cancel(ctx context.Context, bookingID string, userID string) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	today := s.Today()
	var cancelled *domain.Booking

	storeCtx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	err := s.txManager.Do(storeCtx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.IsOwnedBy(userID) {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled(today) {
			return fmt.Errorf("%w: booking is %s", ErrCannotCancel, booking.Classify(today))
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", userID, bookingID)
		case errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled: %v", bookingID, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("Cancel: %v", err)
		default:
			s.logger.Error("Cancel: transaction failed for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordBooking(metrics.BookingCancelled)
	}

	event := domain.BookingEvent{
		Type:       domain.EventBookingCancelled,
		RoomID:     cancelled.RoomID,
		BookingID:  cancelled.ID,
		Range:      cancelled.Range,
		OccurredAt: s.timeProvider.Now(),
	}
	if err := s.publisher.Notify(ctx, event); err != nil {
		s.logger.Error("Cancel: failed to publish event for booking id=%s: %v", bookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s of room=%s", bookingID, cancelled.RoomID)
	return nil
}
