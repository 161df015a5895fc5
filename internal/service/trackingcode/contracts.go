package trackingcode

import "context"

// Store проверяет занятость кода
type Store interface {
	TrackingCodeExists(ctx context.Context, code string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
