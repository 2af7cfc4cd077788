package pgnotify

import "errors"

var (
	// ErrEncodePayload ошибка сериализации события
	ErrEncodePayload = errors.New("pgnotify: failed to encode payload")

	// ErrDecodePayload ошибка разбора уведомления
	ErrDecodePayload = errors.New("pgnotify: failed to decode payload")

	// ErrNotify ошибка выполнения pg_notify
	ErrNotify = errors.New("pgnotify: failed to notify")

	// ErrListen ошибка подписки на канал
	ErrListen = errors.New("pgnotify: failed to listen")
)
