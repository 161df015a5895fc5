package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// AppointmentLister источник записей на дату
type AppointmentLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// BlockedSlotLister источник блокировок на дату
type BlockedSlotLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedSlot, error)
}
