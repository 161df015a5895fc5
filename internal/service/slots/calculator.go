package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Compute строит занятость всех 24 часов дня.
// Записи и блокировки с часом вне 0..23 игнорируются.
func Compute(appointments []*domain.Appointment, blocked []*domain.BlockedSlot) []domain.SlotView {
	views := make([]domain.SlotView, domain.HoursPerDay)
	for h := range views {
		views[h].Hour = h
	}

	for _, b := range blocked {
		if b == nil || !domain.IsValidHour(b.Hour) {
			continue
		}
		views[b.Hour].IsBlocked = true
		views[b.Hour].BlockedReason = b.Reason
	}

	for _, a := range appointments {
		if a == nil || !domain.IsValidHour(a.Hour) {
			continue
		}
		switch a.Type {
		case domain.AppointmentTypeLive:
			views[a.Hour].LiveCount++
		case domain.AppointmentTypeDrop:
			views[a.Hour].DropCount++
		}
	}

	for h := range views {
		v := &views[h]
		v.Available = !v.IsBlocked &&
			v.LiveCount < domain.LiveCapacityPerSlot &&
			v.DropCount < domain.DropCapacityPerSlot
	}

	return views
}

// FindNextAvailable линейно ищет первый час начиная с fromHour, куда помещается запись типа t
func FindNextAvailable(views []domain.SlotView, fromHour int, t domain.AppointmentType) (int, bool) {
	if fromHour < 0 {
		fromHour = 0
	}
	for h := fromHour; h < len(views); h++ {
		if views[h].HasCapacityFor(t) {
			return views[h].Hour, true
		}
	}
	return 0, false
}

// Calculator загружает записи и блокировки и считает занятость
type Calculator struct {
	appointments AppointmentLister
	blocked      BlockedSlotLister
}

// NewCalculator создает калькулятор доступности слотов
func NewCalculator(appointments AppointmentLister, blocked BlockedSlotLister) *Calculator {
	return &Calculator{
		appointments: appointments,
		blocked:      blocked,
	}
}

// ForDate возвращает занятость дня
func (c *Calculator) ForDate(ctx context.Context, date time.Time) ([]domain.SlotView, error) {
	return c.ForDateExcluding(ctx, date, 0)
}

// ForDateExcluding возвращает занятость дня без учета записи excludeID (0 - учитывать все)
func (c *Calculator) ForDateExcluding(ctx context.Context, date time.Time, excludeID int64) ([]domain.SlotView, error) {
	appointments, err := c.appointments.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ForDate - list appointments: %w", ErrInternal, err)
	}

	blocked, err := c.blocked.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ForDate - list blocked slots: %w", ErrInternal, err)
	}

	if excludeID != 0 {
		filtered := make([]*domain.Appointment, 0, len(appointments))
		for _, a := range appointments {
			if a.ID != excludeID {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	return Compute(appointments, blocked), nil
}
