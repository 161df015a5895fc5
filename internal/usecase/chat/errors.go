package chat

import "errors"

var (
	// ErrInvalidInput возвращается при пустом сообщении или без email вендора
	ErrInvalidInput = errors.New("chat: invalid input data")
)
