package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelBooking/pkg/types"
)

const (
	tableBookings = "bookings"

	// constraint bookings_no_overlap (migrations/001_create_bookings.up.sql)
	codeExclusionViolation pq.ErrorCode = "23P01"
	codeUniqueViolation    pq.ErrorCode = "23505"
)

var bookingColumns = []string{
	"id",
	"room_id",
	"user_id",
	"start_date",
	"end_date",
	"guest_name",
	"guest_count",
	"room_title",
	"room_owner_id",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Если ID пустой, генерируется UUID.
// Пересечение с существующим бронированием той же комнаты отклоняется самой БД
// (EXCLUDE constraint) и возвращается как ErrConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"room_id",
			"user_id",
			"start_date",
			"end_date",
			"guest_name",
			"guest_count",
			"room_title",
			"room_owner_id",
		).
		Values(
			booking.ID,
			booking.RoomID,
			booking.UserID,
			booking.Range.Start(),
			booking.Range.End(),
			booking.GuestName,
			booking.GuestCount,
			booking.RoomTitle,
			booking.RoomOwnerID,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case codeExclusionViolation:
				return nil, fmt.Errorf("%w: room=%s range=%s", ErrConflict, booking.RoomID, booking.Range)
			case codeUniqueViolation:
				return nil, fmt.Errorf("%w: id=%s", ErrDuplicateID, booking.ID)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListByRoom получает бронирования комнаты, отсортированные по дате заезда
func (r *Repository) ListByRoom(ctx context.Context, roomID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("start_date ASC", "end_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByUser получает бронирования пользователя, сначала самые поздние
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC", "created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListByRoomOwnerOn получает бронирования номеров администратора, проживание по которым
// включает день day (обе границы включительно)
func (r *Repository) ListByRoomOwnerOn(ctx context.Context, ownerID string, day types.Date) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"room_owner_id": ownerID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("room_id ASC", "start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomOwnerOn - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomOwnerOn - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование (отмена)
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// LockRoom берет транзакционную advisory-блокировку комнаты.
// Блокировка держится до конца транзакции и сериализует проверку и создание брони
// между всеми экземплярами сервиса. Вне транзакции возвращает ErrTransaction.
func (r *Repository) LockRoom(ctx context.Context, roomID string) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockRoom room=%s", ErrTransaction, roomID)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", roomID); err != nil {
		return fmt.Errorf("%w: LockRoom - execute: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		start, end types.Date
	)

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.UserID,
		&start,
		&end,
		&booking.GuestName,
		&booking.GuestCount,
		&booking.RoomTitle,
		&booking.RoomOwnerID,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Range, err = domain.NewDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("booking id=%s: %w", booking.ID, err)
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
