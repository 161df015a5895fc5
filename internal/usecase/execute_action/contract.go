package execute_action

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

// BookingEngine движок правил бронирования
type BookingEngine interface {
	Create(ctx context.Context, req *appointments.CreateRequest) (*domain.Appointment, error)
	Reschedule(ctx context.Context, code string, newDate time.Time, newHour int) (*domain.Appointment, error)
	Cancel(ctx context.Context, code string) (*domain.Appointment, error)
	FindNextAvailableSlot(ctx context.Context, date time.Time, hour int, t domain.AppointmentType) (int, bool, error)
	GetSlots(ctx context.Context, date time.Time) ([]domain.SlotView, error)
	GetUserAppointments(ctx context.Context, email string) ([]*domain.Appointment, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
