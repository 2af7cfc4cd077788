package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBooking/pkg/dbmetrics"
)

// Коды PostgreSQL, после которых транзакцию имеет смысл повторить
const (
	codeSerializationFailure pq.ErrorCode = "40001"
	codeDeadlockDetected     pq.ErrorCode = "40P01"
)

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")
	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
	// ErrRetriesExhausted транзакция не прошла после всех повторов
	ErrRetriesExhausted = errors.New("txmanager: retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомление о каждом повторе (метрики)
type RetryObserver interface {
	IncTxRetry()
}

// Options параметры повторов
type Options struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultOptions 3 повтора, 10ms -> 20ms -> 40ms
var DefaultOptions = Options{
	MaxRetries:     3,
	InitialBackoff: 10 * time.Millisecond,
	MaxBackoff:     200 * time.Millisecond,
}

// TransactionManager выполняет функции в транзакции, транзакция передается через контекст
type TransactionManager struct {
	db       TxBeginner
	opts     Options
	observer RetryObserver
}

// NewTransactionManager создает менеджер с DefaultOptions
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return NewTransactionManagerWithOptions(db, DefaultOptions, nil)
}

// NewTransactionManagerWithOptions создает менеджер с указанными параметрами повторов.
// observer может быть nil.
func NewTransactionManagerWithOptions(db TxBeginner, opts Options, observer RetryObserver) *TransactionManager {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &TransactionManager{db: db, opts: opts, observer: observer}
}

// Do выполняет fn в транзакции READ COMMITTED без повторов
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При serialization failure / deadlock транзакция повторяется целиком с экспоненциальной задержкой.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	backoff := m.opts.InitialBackoff

	var err error
	for attempt := 0; attempt <= m.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if m.observer != nil {
				m.observer.IncTxRetry()
			}
			if waitErr := sleep(ctx, backoff); waitErr != nil {
				return waitErr
			}
			backoff *= 2
			if m.opts.MaxBackoff > 0 && backoff > m.opts.MaxBackoff {
				backoff = m.opts.MaxBackoff
			}
		}

		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%w: %d attempts: %w", ErrRetriesExhausted, m.opts.MaxRetries+1, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

// IsRetryable возвращает true для serialization failure и deadlock
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == codeSerializationFailure || pqErr.Code == codeDeadlockDetected
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
