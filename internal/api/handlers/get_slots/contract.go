package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

type AppointmentService interface {
	GetSlots(ctx context.Context, date time.Time) ([]domain.SlotView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
