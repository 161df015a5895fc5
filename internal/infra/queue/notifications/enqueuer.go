package notifications

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const (
	defaultQueue    = "notifications"
	defaultMaxRetry = 5
)

// Enqueuer ставит уведомления в очередь asynq вместо прямой отправки
type Enqueuer struct {
	client   TaskEnqueuer
	queue    string
	maxRetry int
	logger   Logger
}

// NewEnqueuer создает новый экземпляр
func NewEnqueuer(client TaskEnqueuer, queue string, maxRetry int, logger Logger) *Enqueuer {
	if queue == "" {
		queue = defaultQueue
	}
	if maxRetry <= 0 {
		maxRetry = defaultMaxRetry
	}
	return &Enqueuer{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
		logger:   logger,
	}
}

// Notify реализует отправитель уведомлений через очередь
func (e *Enqueuer) Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error {
	task, err := NewTask(kind, a)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(e.queue), asynq.MaxRetry(e.maxRetry))
	if err != nil {
		return fmt.Errorf("%w: %s for %s: %v", ErrEnqueue, kind, a.TrackingCode, err)
	}

	e.logger.Info("Enqueuer: %s for %s queued as %s", kind, a.TrackingCode, info.ID)
	return nil
}
