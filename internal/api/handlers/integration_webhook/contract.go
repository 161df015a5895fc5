package integration_webhook

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

type AppointmentService interface {
	Create(ctx context.Context, req *appointments.CreateRequest) (*domain.Appointment, error)
	Reschedule(ctx context.Context, code string, newDate time.Time, newHour int) (*domain.Appointment, error)
	Cancel(ctx context.Context, code string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
