package notifications

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const defaultAsyncTimeout = 10 * time.Second

// AsyncNotifier отправляет уведомления в фоне, не задерживая ответ на бронирование.
// Wait нужно вызвать при остановке сервиса.
type AsyncNotifier struct {
	next    Notifier
	timeout time.Duration
	logger  Logger
	wg      conc.WaitGroup
}

// NewAsyncNotifier создает фоновый отправитель поверх next
func NewAsyncNotifier(next Notifier, timeout time.Duration, logger Logger) *AsyncNotifier {
	if timeout <= 0 {
		timeout = defaultAsyncTimeout
	}
	return &AsyncNotifier{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

// Notify ставит отправку в фон и сразу возвращает nil
func (n *AsyncNotifier) Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error {
	if a == nil {
		return nil
	}

	// Отмена запроса не должна обрывать уже принятое уведомление
	detached := context.WithoutCancel(ctx)
	appt := *a

	n.wg.Go(func() {
		sendCtx, cancel := context.WithTimeout(detached, n.timeout)
		defer cancel()

		if err := n.next.Notify(sendCtx, kind, &appt); err != nil {
			n.logger.Error("AsyncNotifier: %s for %s failed: %v", kind, appt.TrackingCode, err)
		}
	})

	return nil
}

// Wait дожидается всех отправок. Паника в отправке логируется, а не роняет процесс.
func (n *AsyncNotifier) Wait() {
	if r := n.wg.WaitAndRecover(); r != nil {
		n.logger.Error("AsyncNotifier: notification panicked: %v", r.Value)
	}
}
