package notifications

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/integrations/brevo"
)

// Service отправляет письма вендорам о событиях записи
type Service struct {
	sender  EmailSender
	appLink string
	logger  Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(sender EmailSender, appLink string, logger Logger) *Service {
	return &Service{
		sender:  sender,
		appLink: appLink,
		logger:  logger,
	}
}

// Notify собирает и отправляет письмо.
// Если транспорт не настроен или у записи нет email, письмо пропускается без ошибки.
func (s *Service) Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error {
	if a == nil || a.VendorEmail == "" {
		s.logger.Warn("Notify: skipped %s notification, recipient email is empty", kind)
		return nil
	}

	if !s.sender.Configured() {
		s.logger.Warn("Notify: skipped %s notification for %s, email sender is not configured", kind, a.TrackingCode)
		return nil
	}

	msg, err := Render(kind, a, s.appLink)
	if err != nil {
		return err
	}

	to := brevo.Contact{Email: a.VendorEmail, Name: a.VendorName}
	messageID, err := s.sender.Send(ctx, to, msg.Subject, msg.HTML, msg.Text)
	if err != nil {
		return fmt.Errorf("%w: Notify - %s for %s: %w", ErrSend, kind, a.TrackingCode, err)
	}

	s.logger.Info("Notify: %s email sent for %s, message_id=%s", kind, a.TrackingCode, messageID)
	return nil
}
