package notifications

import "errors"

var (
	// ErrEncodePayload возвращается при ошибке сериализации задачи
	ErrEncodePayload = errors.New("notification queue: failed to encode payload")

	// ErrDecodePayload возвращается при некорректной задаче в очереди
	ErrDecodePayload = errors.New("notification queue: failed to decode payload")

	// ErrEnqueue возвращается при ошибке постановки задачи в очередь
	ErrEnqueue = errors.New("notification queue: failed to enqueue task")
)
