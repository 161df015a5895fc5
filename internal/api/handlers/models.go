package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// AppointmentResponse HTTP представление записи
type AppointmentResponse struct {
	TrackingCode string `json:"trackingCode"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	Type         string `json:"type"`
	VendorName   string `json:"vendorName"`
	VendorEmail  string `json:"vendorEmail"`
	CarrierName  string `json:"carrierName"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// FromAppointment конвертирует доменную запись в HTTP ответ
func FromAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		TrackingCode: a.TrackingCode,
		Date:         a.Date.Format(domain.DateFormat),
		Hour:         a.Hour,
		Type:         string(a.Type),
		VendorName:   a.VendorName,
		VendorEmail:  a.VendorEmail,
		CarrierName:  a.CarrierName,
	}
	if !a.CreatedAt.IsZero() {
		resp.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	if !a.UpdatedAt.IsZero() {
		resp.UpdatedAt = a.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// FromAppointments конвертирует список записей
func FromAppointments(list []*domain.Appointment) []*AppointmentResponse {
	out := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, FromAppointment(a))
	}
	return out
}
