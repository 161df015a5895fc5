package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date string `json:"date"` // "2025-11-19"
	Hour *int   `json:"hour"`
	Type string `json:"type"` // live | drop
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAppointmentRequest) ToServiceRequest(requester domain.Requester) (*appointments.CreateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	if r.Hour == nil {
		return nil, fmt.Errorf("hour is required")
	}
	t, err := domain.ParseAppointmentType(r.Type)
	if err != nil {
		return nil, err
	}

	return &appointments.CreateRequest{
		Date:      date,
		Hour:      *r.Hour,
		Type:      t,
		Requester: requester,
	}, nil
}
