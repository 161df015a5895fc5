package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// TypeAppointmentNotification тип задачи asynq для писем о записи
const TypeAppointmentNotification = "appointment:notify"

// Payload снимок записи на момент события.
// Отмененная запись к моменту обработки уже удалена, поэтому данные едут в задаче.
type Payload struct {
	Kind         domain.NotificationKind `json:"kind"`
	Date         string                  `json:"date"`
	Hour         int                     `json:"hour"`
	Type         domain.AppointmentType  `json:"type"`
	VendorName   string                  `json:"vendor_name"`
	VendorEmail  string                  `json:"vendor_email"`
	CarrierName  string                  `json:"carrier_name,omitempty"`
	TrackingCode string                  `json:"tracking_code"`
}

// NewTask собирает задачу для события kind
func NewTask(kind domain.NotificationKind, a *domain.Appointment) (*asynq.Task, error) {
	b, err := json.Marshal(Payload{
		Kind:         kind,
		Date:         a.Date.Format(domain.DateFormat),
		Hour:         a.Hour,
		Type:         a.Type,
		VendorName:   a.VendorName,
		VendorEmail:  a.VendorEmail,
		CarrierName:  a.CarrierName,
		TrackingCode: a.TrackingCode,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePayload, err)
	}
	return asynq.NewTask(TypeAppointmentNotification, b), nil
}

// ParsePayload разбирает задачу обратно в событие и запись
func ParsePayload(task *asynq.Task) (domain.NotificationKind, *domain.Appointment, error) {
	var p Payload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDecodePayload, err)
	}

	date, err := time.Parse(domain.DateFormat, p.Date)
	if err != nil {
		return "", nil, fmt.Errorf("%w: date %q: %v", ErrDecodePayload, p.Date, err)
	}

	return p.Kind, &domain.Appointment{
		Date:         date,
		Hour:         p.Hour,
		Type:         p.Type,
		VendorName:   p.VendorName,
		VendorEmail:  p.VendorEmail,
		CarrierName:  p.CarrierName,
		TrackingCode: p.TrackingCode,
	}, nil
}
