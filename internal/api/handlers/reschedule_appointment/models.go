package reschedule_appointment

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Date string `json:"date"` // "2025-11-20"
	Hour *int   `json:"hour"`
}
