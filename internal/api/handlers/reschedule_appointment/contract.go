package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

type AppointmentService interface {
	Reschedule(ctx context.Context, code string, newDate time.Time, newHour int) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
