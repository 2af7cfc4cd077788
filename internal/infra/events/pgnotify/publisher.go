package pgnotify

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
	"github.com/m04kA/SMC-HotelBooking/pkg/dbmetrics"
)

// Publisher отправляет события бронирований в канал PostgreSQL.
// Внутри транзакции уведомление доставляется только после COMMIT.
type Publisher struct {
	db      dbmetrics.DBExecutor
	channel string
}

// NewPublisher создает publisher для канала channel
func NewPublisher(db dbmetrics.DBExecutor, channel string) *Publisher {
	return &Publisher{db: db, channel: channel}
}

// Notify выполняет pg_notify с JSON-представлением события
func (p *Publisher) Notify(ctx context.Context, event domain.BookingEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, p.db)
	if _, err := executor.ExecContext(ctx, "SELECT pg_notify($1, $2)", p.channel, data); err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrNotify, p.channel, err)
	}

	return nil
}
