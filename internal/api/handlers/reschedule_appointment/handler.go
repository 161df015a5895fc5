package reschedule_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

const (
	msgInvalidTrackingCode = "invalid tracking code, expected 8 digits"
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidFields       = "date (YYYY-MM-DD) and hour (0-23) are required"
	msgNotFound            = "appointment not found"
	msgPastDate            = "cannot book appointments in the past"
	msgDuplicate           = "you already have an appointment in this slot"
	msgSlotUnavailable     = "the requested slot is not available"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{trackingCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["trackingCode"]
	if !domain.IsValidTrackingCode(code) {
		h.logger.Warn("PUT /appointments/{code} - Invalid tracking code: %q", code)
		handlers.RespondBadRequest(w, msgInvalidTrackingCode)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{code} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil || req.Hour == nil {
		h.logger.Warn("PUT /appointments/{code} - Invalid fields: code=%s, date=%q", code, req.Date)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	updated, err := h.service.Reschedule(r.Context(), code, date, *req.Hour)
	if err != nil {
		var blocked *appointments.SlotBlockedError
		var full *appointments.CapacityExceededError

		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{code} - Invalid input: code=%s, error=%v", code, err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, appointments.ErrNotFound):
			h.logger.Warn("PUT /appointments/{code} - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrPastDate):
			h.logger.Warn("PUT /appointments/{code} - Past slot: code=%s", code)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.As(err, &blocked):
			h.logger.Warn("PUT /appointments/{code} - Slot blocked: code=%s, hour=%d", code, blocked.Hour)
			handlers.RespondConflict(w, blocked.Error())

		case errors.As(err, &full):
			h.logger.Warn("PUT /appointments/{code} - Slot full: code=%s, hour=%d", code, full.Hour)
			handlers.RespondConflict(w, full.Error())

		case errors.Is(err, appointments.ErrCapacityExceeded):
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, appointments.ErrDuplicateBooking):
			h.logger.Warn("PUT /appointments/{code} - Duplicate booking: code=%s", code)
			handlers.RespondConflict(w, msgDuplicate)

		default:
			h.logger.Error("PUT /appointments/{code} - Failed to reschedule: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{code} - Appointment rescheduled: code=%s, date=%s, hour=%d",
		code, updated.Date.Format(domain.DateFormat), updated.Hour)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(updated))
}
