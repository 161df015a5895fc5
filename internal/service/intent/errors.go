package intent

import "errors"

var (
	// ErrTransientProvider временная ошибка модели (лимит, недоступность): включается разбор по правилам
	ErrTransientProvider = errors.New("intent: transient provider error")

	// ErrProvider прочие ошибки модели
	ErrProvider = errors.New("intent: provider error")

	// ErrIntentParse ответ модели не соответствует схеме намерения
	ErrIntentParse = errors.New("intent: malformed extractor output")
)
