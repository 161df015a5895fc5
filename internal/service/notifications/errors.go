package notifications

import "errors"

var (
	// ErrUnknownKind возвращается для неизвестного типа уведомления
	ErrUnknownKind = errors.New("notifications: unknown notification kind")

	// ErrRender возвращается при ошибке сборки письма
	ErrRender = errors.New("notifications: failed to render message")

	// ErrSend возвращается при ошибке отправки письма
	ErrSend = errors.New("notifications: failed to send message")
)
