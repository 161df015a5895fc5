package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

type AppointmentService interface {
	Create(ctx context.Context, req *appointments.CreateRequest) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
