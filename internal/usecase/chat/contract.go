package chat

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/intent"
	"github.com/m04kA/SMC-AppointmentDesk/internal/usecase/execute_action"
)

// ConversationStore ограниченная история диалога по вендору
type ConversationStore interface {
	History(ctx context.Context, identity string) ([]domain.ConversationTurn, error)
	Append(ctx context.Context, identity string, turns ...domain.ConversationTurn) error
	Reset(ctx context.Context, identity string) error
}

// IntentResolver разбор текста в намерение
type IntentResolver interface {
	Resolve(ctx context.Context, req intent.Request) (*domain.Resolution, error)
}

// ActionExecutor выполнение намерения
type ActionExecutor interface {
	Execute(ctx context.Context, in *domain.Intent, requester domain.Requester) *execute_action.Result
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
