package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByTrackingCode(ctx context.Context, code string) (*domain.Appointment, error)
	ListByVendor(ctx context.Context, email string, from time.Time) ([]*domain.Appointment, error)
	UpdateSlot(ctx context.Context, a *domain.Appointment, date time.Time, hour int) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// SlotCalculator расчет занятости слотов на дату
type SlotCalculator interface {
	ForDate(ctx context.Context, date time.Time) ([]domain.SlotView, error)
	ForDateExcluding(ctx context.Context, date time.Time, excludeID int64) ([]domain.SlotView, error)
}

// CodeAllocator выдает уникальные коды записей
type CodeAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

// Notifier отправляет уведомления вендору (ошибки не критичны)
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, a *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет исходов операций
type MetricsRecorder interface {
	RecordBookingOutcome(operation, outcome string)
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
