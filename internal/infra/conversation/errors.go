package conversation

import "errors"

var (
	// ErrStorage возвращается при ошибке хранилища истории
	ErrStorage = errors.New("conversation: storage error")

	// ErrDecode возвращается при поврежденной записи истории
	ErrDecode = errors.New("conversation: failed to decode turn")
)
