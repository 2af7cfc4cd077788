package pgnotify

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBooking/internal/domain"
)

// pingInterval проверка соединения, если уведомлений давно не было
const pingInterval = 90 * time.Second

// Sink получатель разобранных событий (roomevents.Hub)
type Sink interface {
	Publish(event domain.BookingEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ListenerConfig параметры переподключения pq.Listener
type ListenerConfig struct {
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	// OnError вызывается для каждой ошибки подписчика; может быть nil
	OnError func(err error)
}

// Listener слушает канал через pq.Listener и передает события в Sink
type Listener struct {
	listener *pq.Listener
	cfg      ListenerConfig
	sink     Sink
	log      Logger
	started  bool
	done     chan struct{}
}

// NewListener создает listener. Соединение устанавливается в фоне драйвером.
func NewListener(dsn string, cfg ListenerConfig, sink Sink, log Logger) *Listener {
	l := &Listener{
		cfg:  cfg,
		sink: sink,
		log:  log,
		done: make(chan struct{}),
	}
	l.listener = pq.NewListener(dsn, cfg.MinReconnectInterval, cfg.MaxReconnectInterval, l.onConnectionEvent)
	return l
}

// Start подписывается на канал и запускает цикл доставки до отмены ctx
func (l *Listener) Start(ctx context.Context) error {
	if err := l.listener.Listen(l.cfg.Channel); err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrListen, l.cfg.Channel, err)
	}

	l.log.Info("pgnotify: listening on channel %s", l.cfg.Channel)
	l.started = true
	go l.run(ctx)
	return nil
}

// Close закрывает соединение. Цикл доставки должен быть остановлен отменой ctx из Start.
func (l *Listener) Close() error {
	if l.started {
		<-l.done
	}
	return l.listener.Close()
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			// nil приходит после переподключения: часть уведомлений могла потеряться
			if n == nil {
				l.log.Warn("pgnotify: connection re-established on channel %s, notifications may have been lost", l.cfg.Channel)
				continue
			}
			l.handle(n.Extra)
		case <-ticker.C:
			if err := l.listener.Ping(); err != nil {
				l.reportError(fmt.Errorf("pgnotify: ping failed: %w", err))
			}
		}
	}
}

// handle разбирает payload и передает событие в sink
func (l *Listener) handle(raw string) {
	event, err := decode(raw)
	if err != nil {
		l.reportError(err)
		return
	}
	l.sink.Publish(event)
}

func (l *Listener) onConnectionEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected:
		l.log.Info("pgnotify: connected")
	case pq.ListenerEventReconnected:
		l.log.Info("pgnotify: reconnected")
	case pq.ListenerEventDisconnected:
		l.reportError(fmt.Errorf("pgnotify: disconnected: %w", err))
	case pq.ListenerEventConnectionAttemptFailed:
		l.reportError(fmt.Errorf("pgnotify: connection attempt failed: %w", err))
	}
}

func (l *Listener) reportError(err error) {
	l.log.Error("pgnotify: %v", err)
	if l.cfg.OnError != nil {
		l.cfg.OnError(err)
	}
}
