package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentDesk/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/trackingcode"
)

// Service движок правил бронирования: создание, перенос и отмена записей
// с проверкой блокировок, вместимости и запрета на прошлое время
type Service struct {
	repo         AppointmentRepository
	slots        SlotCalculator
	codes        CodeAllocator
	notifier     Notifier
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей.
// location - часовой пояс площадки, в котором трактуются дата и час записи.
func NewService(
	repo AppointmentRepository,
	slots SlotCalculator,
	codes CodeAllocator,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		slots:        slots,
		codes:        codes,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create создает запись.
// Проверка слота, выдача кода и вставка выполняются в сериализуемой транзакции,
// уведомление отправляется после фиксации и на результат не влияет.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.Appointment, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		s.record(opCreate, err)
		return nil, err
	}

	s.logger.Info("Create: vendor=%s, date=%s, hour=%d, type=%s",
		req.Requester.Email, req.Date.Format(domain.DateFormat), req.Hour, req.Type)

	if err := s.checkNotPast(req.Date, req.Hour); err != nil {
		s.logger.Warn("Create: vendor=%s requested past slot %s %d:00", req.Requester.Email, req.Date.Format(domain.DateFormat), req.Hour)
		s.record(opCreate, err)
		return nil, err
	}

	var created *domain.Appointment

	create := func(txCtx context.Context) error {
		views, err := s.slots.ForDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: Create - compute slots: %w", ErrInternal, err)
		}

		if err := checkSlot(views[req.Hour], req.Type); err != nil {
			return err
		}

		code, err := s.codes.Allocate(txCtx)
		if err != nil {
			if errors.Is(err, trackingcode.ErrExhausted) {
				return ErrTrackingCodeExhausted
			}
			return fmt.Errorf("%w: Create - allocate tracking code: %w", ErrInternal, err)
		}

		appointment := &domain.Appointment{
			Date:         s.civilDate(req.Date),
			Hour:         req.Hour,
			Type:         req.Type,
			VendorName:   req.Requester.Name,
			VendorEmail:  strings.ToLower(strings.TrimSpace(req.Requester.Email)),
			CarrierName:  req.Requester.CarrierName,
			TrackingCode: code,
		}

		created, err = s.repo.Create(txCtx, appointment)
		if err != nil {
			return mapWriteError("Create", err, req.Hour, req.Type)
		}

		return nil
	}

	// Код мог занять параллельный запрос между проверкой и вставкой: транзакция
	// после нарушения уникальности прервана, поэтому повторяется целиком
	var err error
	for attempt := 0; attempt <= codeCollisionRetries; attempt++ {
		err = s.txManager.DoSerializable(ctx, create)
		if !errors.Is(err, appointmentRepo.ErrTrackingCodeTaken) {
			break
		}
		s.logger.Warn("Create: tracking code collided on insert, attempt=%d", attempt+1)
	}

	s.record(opCreate, err)
	if err != nil {
		s.logFailure("Create", err)
		return nil, err
	}

	s.logger.Info("Create: created appointment code=%s, date=%s, hour=%d, type=%s",
		created.TrackingCode, created.Date.Format(domain.DateFormat), created.Hour, created.Type)

	s.notify(ctx, domain.NotificationConfirmation, created)

	return created, nil
}

// Reschedule переносит запись на новый слот, тип записи сохраняется.
// При переносе в тот же слот собственная запись не учитывается при подсчете вместимости.
func (s *Service) Reschedule(ctx context.Context, code string, newDate time.Time, newHour int) (*domain.Appointment, error) {
	if err := validateTrackingCode(code); err != nil {
		s.record(opReschedule, err)
		return nil, err
	}
	if err := validateSlot(newDate, newHour); err != nil {
		s.record(opReschedule, err)
		return nil, err
	}

	s.logger.Info("Reschedule: code=%s, new_date=%s, new_hour=%d", code, newDate.Format(domain.DateFormat), newHour)

	var updated *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByTrackingCode(txCtx, code)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: Reschedule - get appointment: %w", ErrInternal, err)
		}

		if err := s.checkNotPast(newDate, newHour); err != nil {
			return err
		}

		views, err := s.slots.ForDateExcluding(txCtx, newDate, current.ID)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - compute slots: %w", ErrInternal, err)
		}

		if err := checkSlot(views[newHour], current.Type); err != nil {
			return err
		}

		updated, err = s.repo.UpdateSlot(txCtx, current, s.civilDate(newDate), newHour)
		if err != nil {
			return mapWriteError("Reschedule", err, newHour, current.Type)
		}

		return nil
	})

	s.record(opReschedule, err)
	if err != nil {
		s.logFailure("Reschedule", err)
		return nil, err
	}

	s.logger.Info("Reschedule: appointment code=%s moved to %s %d:00",
		updated.TrackingCode, updated.Date.Format(domain.DateFormat), updated.Hour)

	s.notify(ctx, domain.NotificationReschedule, updated)

	return updated, nil
}

// Cancel удаляет запись по коду и возвращает удаленную запись
func (s *Service) Cancel(ctx context.Context, code string) (*domain.Appointment, error) {
	if err := validateTrackingCode(code); err != nil {
		s.record(opCancel, err)
		return nil, err
	}

	s.logger.Info("Cancel: code=%s", code)

	var cancelled *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByTrackingCode(txCtx, code)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: Cancel - get appointment: %w", ErrInternal, err)
		}

		if err := s.repo.Delete(txCtx, current.ID); err != nil {
			if errors.Is(err, appointmentRepo.ErrNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: Cancel - delete appointment: %w", ErrInternal, err)
		}

		cancelled = current
		return nil
	})

	s.record(opCancel, err)
	if err != nil {
		s.logFailure("Cancel", err)
		return nil, err
	}

	s.logger.Info("Cancel: appointment code=%s cancelled", code)

	s.notify(ctx, domain.NotificationCancellation, cancelled)

	return cancelled, nil
}

// FindNextAvailableSlot ищет первый час не раньше hour в тот же день, куда помещается запись типа t
func (s *Service) FindNextAvailableSlot(ctx context.Context, date time.Time, hour int, t domain.AppointmentType) (int, bool, error) {
	views, err := s.slots.ForDate(ctx, date)
	if err != nil {
		s.logger.Error("FindNextAvailableSlot: failed to compute slots for %s: %v", date.Format(domain.DateFormat), err)
		return 0, false, fmt.Errorf("%w: FindNextAvailableSlot - compute slots: %w", ErrInternal, err)
	}

	next, found := slots.FindNextAvailable(views, hour, t)
	return next, found, nil
}

// GetSlots возвращает занятость всех часов дня
func (s *Service) GetSlots(ctx context.Context, date time.Time) ([]domain.SlotView, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	views, err := s.slots.ForDate(ctx, date)
	if err != nil {
		s.logger.Error("GetSlots: failed to compute slots for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetSlots - compute slots: %w", ErrInternal, err)
	}

	return views, nil
}

// GetUserAppointments возвращает предстоящие записи вендора (с сегодняшнего дня), упорядоченные по дате и часу
func (s *Service) GetUserAppointments(ctx context.Context, email string) ([]*domain.Appointment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: vendor email is required", ErrInvalidInput)
	}

	today := domain.CivilDate(s.timeProvider.Now(), s.location)

	list, err := s.repo.ListByVendor(ctx, email, today)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for vendor=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %w", ErrInternal, err)
	}

	return list, nil
}

// GetByTrackingCode получает запись по коду
func (s *Service) GetByTrackingCode(ctx context.Context, code string) (*domain.Appointment, error) {
	if err := validateTrackingCode(code); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByTrackingCode(ctx, code)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: GetByTrackingCode - repository error: %w", ErrInternal, err)
	}

	return a, nil
}

// Today возвращает текущую дату площадки
func (s *Service) Today() time.Time {
	return domain.CivilDate(s.timeProvider.Now(), s.location)
}

// checkNotPast запрещает слоты, начало которых не строго в будущем
func (s *Service) checkNotPast(date time.Time, hour int) error {
	start := domain.SlotStart(date, hour, s.location)
	if !start.After(s.timeProvider.Now()) {
		return ErrPastDate
	}
	return nil
}

func (s *Service) civilDate(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

func (s *Service) notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, kind, a); err != nil {
		s.logger.Error("notify: %s notification for code=%s failed: %v", kind, a.TrackingCode, err)
	}
}

func (s *Service) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordBookingOutcome(operation, outcomeOf(err))
}

func (s *Service) logFailure(op string, err error) {
	switch {
	case errors.Is(err, ErrInternal), errors.Is(err, ErrTrackingCodeExhausted):
		s.logger.Error("%s: %v", op, err)
	default:
		s.logger.Warn("%s: rejected: %v", op, err)
	}
}

// mapWriteError переводит ошибки условной записи репозитория в ошибки правил
func mapWriteError(op string, err error, hour int, t domain.AppointmentType) error {
	switch {
	case errors.Is(err, appointmentRepo.ErrSlotUnavailable):
		return &CapacityExceededError{Hour: hour, Type: t}
	case errors.Is(err, appointmentRepo.ErrDuplicate):
		return ErrDuplicateBooking
	case errors.Is(err, appointmentRepo.ErrTrackingCodeTaken):
		return fmt.Errorf("%w: %s - %w", ErrTrackingCodeExhausted, op, err)
	default:
		return fmt.Errorf("%w: %s - write appointment: %w", ErrInternal, op, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrSlotBlocked):
		return "slot_blocked"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrTrackingCodeExhausted):
		return "tracking_code_exhausted"
	default:
		return "error"
	}
}
