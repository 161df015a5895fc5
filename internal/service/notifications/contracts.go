package notifications

import (
	"context"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/integrations/brevo"
)

// EmailSender транспорт транзакционных писем
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, to brevo.Contact, subject, html, text string) (string, error)
}

// Notifier отправитель уведомлений о записи
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
