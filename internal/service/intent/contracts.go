package intent

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Request входные данные разбора: текст, кто пишет, недавняя история и текущее время
// в часовом поясе площадки
type Request struct {
	Text      string
	Requester domain.Requester
	History   []domain.ConversationTurn
	Now       time.Time
}

// Extractor способ извлечения намерения из текста
type Extractor interface {
	Extract(ctx context.Context, req Request) (*domain.Resolution, error)
}

// Completer языковая модель
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// MetricsRecorder учет результатов разбора
type MetricsRecorder interface {
	RecordIntentResolution(backend, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
