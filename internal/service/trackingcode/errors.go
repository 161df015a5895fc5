package trackingcode

import "errors"

var (
	// ErrExhausted возвращается, когда за все попытки не нашлось свободного кода
	ErrExhausted = errors.New("trackingcode: unable to allocate a unique tracking code")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("trackingcode: internal error")
)
