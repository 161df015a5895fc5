package brevo

import "errors"

var (
	// ErrNotConfigured возвращается, когда не задан API-ключ или отправитель
	ErrNotConfigured = errors.New("brevo client: not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("brevo client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("brevo client: invalid response")
)
