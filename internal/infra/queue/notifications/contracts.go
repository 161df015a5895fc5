package notifications

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// TaskEnqueuer клиент очереди (реализуется *asynq.Client)
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Notifier отправитель, которому воркер передает задачи
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
