package notifications

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Handler обрабатывает задачи TypeAppointmentNotification
type Handler struct {
	notifier Notifier
	logger   Logger
}

// NewHandler создает обработчик задач
func NewHandler(notifier Notifier, logger Logger) *Handler {
	return &Handler{notifier: notifier, logger: logger}
}

// ProcessTask реализует asynq.Handler
func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	kind, a, err := ParsePayload(task)
	if err != nil {
		h.logger.Error("Handler: invalid payload: %v", err)
		// Битая задача не исправится повтором
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if err := h.notifier.Notify(ctx, kind, a); err != nil {
		h.logger.Warn("Handler: %s for %s failed, will retry: %v", kind, a.TrackingCode, err)
		return err
	}

	return nil
}

// NewServeMux регистрирует обработчик уведомлений
func NewServeMux(h *Handler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeAppointmentNotification, h)
	return mux
}

// NewServer создает сервер воркера asynq
func NewServer(redisOpt asynq.RedisClientOpt, concurrency int, queue string) *asynq.Server {
	if queue == "" {
		queue = defaultQueue
	}
	if concurrency <= 0 {
		concurrency = 10
	}
	return asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})
}
