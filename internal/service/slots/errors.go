package slots

import "errors"

var (
	// ErrInternal возвращается при ошибках загрузки данных
	ErrInternal = errors.New("slots: internal error")
)
