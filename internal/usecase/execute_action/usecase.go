package execute_action

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

// UseCase выполняет разобранное намерение и переводит нарушения правил в понятные ответы
type UseCase struct {
	engine       BookingEngine
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine BookingEngine, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет намерение от имени requester
func (uc *UseCase) Execute(ctx context.Context, in *domain.Intent, requester domain.Requester) *Result {
	if in == nil {
		return failure(msgUnknownAction)
	}

	uc.logger.Info("ExecuteAction: action=%s, vendor=%s, date=%s, code=%s",
		in.Action, requester.Email, in.Date, in.TrackingCode)

	switch in.Action {
	case domain.ActionCreate:
		return uc.create(ctx, in, requester)
	case domain.ActionUpdate:
		return uc.reschedule(ctx, in)
	case domain.ActionDelete:
		return uc.cancel(ctx, in)
	case domain.ActionQuery:
		return uc.query(ctx, in, requester)
	}

	return failure(msgUnknownAction)
}

func (uc *UseCase) create(ctx context.Context, in *domain.Intent, requester domain.Requester) *Result {
	date, ok := parseDate(in.Date)
	if !ok || in.Hour == nil || !in.Type.IsValid() {
		return clarification(msgNeedCreateFields)
	}

	req := &appointments.CreateRequest{
		Date:      date,
		Hour:      *in.Hour,
		Type:      in.Type,
		Requester: identity(in, requester),
	}

	created, err := uc.engine.Create(ctx, req)
	if err != nil {
		return uc.ruleViolation(ctx, "create", err, date, *in.Hour, in.Type, "")
	}

	return success(fmt.Sprintf(msgBooked,
		created.Type, displayDate(created.Date), created.Hour, uc.zone(created.Date, created.Hour), created.TrackingCode,
	), created)
}

func (uc *UseCase) reschedule(ctx context.Context, in *domain.Intent) *Result {
	if in.TrackingCode == "" {
		return clarification(msgNeedRescheduleCode)
	}

	date, ok := parseDate(in.Date)
	if !ok || in.Hour == nil {
		return clarification(msgNeedNewSlot)
	}

	moved, err := uc.engine.Reschedule(ctx, in.TrackingCode, date, *in.Hour)
	if err != nil {
		t := in.Type
		if errors.Is(err, appointments.ErrSlotBlocked) || errors.Is(err, appointments.ErrCapacityExceeded) {
			t = uc.existingType(ctx, in.TrackingCode, t)
		}
		return uc.ruleViolation(ctx, "reschedule", err, date, *in.Hour, t, in.TrackingCode)
	}

	return success(fmt.Sprintf(msgRescheduled,
		moved.TrackingCode, displayDate(moved.Date), moved.Hour, uc.zone(moved.Date, moved.Hour), moved.TrackingCode,
	), moved)
}

func (uc *UseCase) cancel(ctx context.Context, in *domain.Intent) *Result {
	if in.TrackingCode == "" {
		return clarification(msgNeedCancelCode)
	}

	cancelled, err := uc.engine.Cancel(ctx, in.TrackingCode)
	if err != nil {
		return uc.ruleViolation(ctx, "cancel", err, time.Time{}, 0, "", in.TrackingCode)
	}

	return success(fmt.Sprintf(msgCancelled, cancelled.TrackingCode), cancelled)
}

func (uc *UseCase) query(ctx context.Context, in *domain.Intent, requester domain.Requester) *Result {
	switch in.QueryType {
	case domain.QueryMyAppointments:
		return uc.myAppointments(ctx, identity(in, requester).Email)
	case domain.QueryAvailability:
		date, ok := parseDate(in.Date)
		if !ok {
			return clarification(msgNeedDate)
		}
		return uc.availability(ctx, date)
	}
	return clarification(msgQueryUnclear)
}

func (uc *UseCase) myAppointments(ctx context.Context, email string) *Result {
	if email == "" {
		return clarification(msgNeedIdentity)
	}

	list, err := uc.engine.GetUserAppointments(ctx, email)
	if err != nil {
		uc.logger.Error("ExecuteAction: failed to list appointments for vendor=%s: %v", email, err)
		return failure(msgInternal)
	}

	if len(list) == 0 {
		return success(msgNoAppointments, list)
	}

	lines := make([]string, 0, len(list)+1)
	lines = append(lines, msgAppointmentsTitle)
	for _, a := range list {
		lines = append(lines, fmt.Sprintf(msgAppointmentLine, displayDate(a.Date), a.Hour, a.Type, a.TrackingCode))
	}

	return success(strings.Join(lines, "\n"), list)
}

// availability свободные часы на дату; для сегодняшнего дня прошедшие часы не показываются
func (uc *UseCase) availability(ctx context.Context, date time.Time) *Result {
	views, err := uc.engine.GetSlots(ctx, date)
	if err != nil {
		uc.logger.Error("ExecuteAction: failed to get slots for %s: %v", date.Format(domain.DateFormat), err)
		return failure(msgInternal)
	}

	now := uc.timeProvider.Now()
	hours := make([]int, 0, len(views))
	labels := make([]string, 0, len(views))
	for _, v := range views {
		if !v.Available || !domain.SlotStart(date, v.Hour, uc.location).After(now) {
			continue
		}
		hours = append(hours, v.Hour)
		labels = append(labels, fmt.Sprintf("%d:00", v.Hour))
	}

	if len(hours) == 0 {
		return success(fmt.Sprintf(msgNoAvailableSlots, displayDate(date)), hours)
	}
	return success(fmt.Sprintf(msgAvailableSlots, displayDate(date), strings.Join(labels, ", ")), hours)
}

// ruleViolation переводит ошибку движка в ответ.
// Для заблокированного или заполненного слота ищется ближайший свободный час того же дня.
func (uc *UseCase) ruleViolation(ctx context.Context, op string, err error, date time.Time, hour int, t domain.AppointmentType, code string) *Result {
	var blocked *appointments.SlotBlockedError
	var full *appointments.CapacityExceededError

	switch {
	case errors.As(err, &blocked), errors.As(err, &full):
		return uc.suggest(ctx, err, date, hour, t)
	case errors.Is(err, appointments.ErrPastDate):
		return failure(msgPastDate)
	case errors.Is(err, appointments.ErrDuplicateBooking):
		return failure(msgDuplicate)
	case errors.Is(err, appointments.ErrTrackingCodeExhausted):
		uc.logger.Error("ExecuteAction: %s failed: %v", op, err)
		return failure(msgCodeExhausted)
	case errors.Is(err, appointments.ErrNotFound):
		return clarification(fmt.Sprintf(msgNotFound, code))
	case errors.Is(err, appointments.ErrInvalidInput):
		return clarification(invalidInputMessage(err))
	}

	uc.logger.Error("ExecuteAction: %s failed: %v", op, err)
	return failure(msgInternal)
}

func (uc *UseCase) suggest(ctx context.Context, cause error, date time.Time, hour int, t domain.AppointmentType) *Result {
	reason := ruleMessage(cause)

	if !t.IsValid() {
		return failure("❌ " + reason)
	}

	next, found, err := uc.engine.FindNextAvailableSlot(ctx, date, hour, t)
	if err != nil {
		uc.logger.Error("ExecuteAction: failed to find next slot for %s %d:00: %v", date.Format(domain.DateFormat), hour, err)
		return failure("❌ " + reason)
	}

	if !found {
		return failure(fmt.Sprintf(msgNoAlternative, reason, t, displayDate(date)))
	}

	return &Result{
		Kind:    KindSuggestion,
		Message: fmt.Sprintf(msgSuggestion, reason, next),
		Alternative: &Alternative{
			Date: date.Format(domain.DateFormat),
			Hour: next,
			Type: t,
		},
	}
}

// existingType тип переносимой записи: альтернатива предлагается для него
func (uc *UseCase) existingType(ctx context.Context, code string, fallback domain.AppointmentType) domain.AppointmentType {
	a, err := uc.engine.GetByTrackingCode(ctx, code)
	if err != nil {
		uc.logger.Warn("ExecuteAction: failed to load appointment %s: %v", code, err)
		return fallback
	}
	return a.Type
}

func (uc *UseCase) zone(date time.Time, hour int) string {
	return domain.SlotStart(date, hour, uc.location).Format("MST")
}
