package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidFields      = "date (YYYY-MM-DD), hour (0-23) and type (live or drop) are required"
	msgMissingVendor      = "vendor is not identified"
	msgPastDate           = "cannot book appointments in the past"
	msgDuplicate          = "you already have an appointment in this slot"
	msgSlotUnavailable    = "the requested slot is not available"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendor)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(requester)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	created, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: vendor=%s, error=%v", requester.Email, err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		case errors.Is(err, appointments.ErrPastDate):
			h.logger.Warn("POST /appointments - Past slot: vendor=%s", requester.Email)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, appointments.ErrSlotBlocked), errors.Is(err, appointments.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Slot unavailable: vendor=%s, error=%v", requester.Email, err)
			handlers.RespondConflict(w, slotUnavailableMessage(err))

		case errors.Is(err, appointments.ErrDuplicateBooking):
			h.logger.Warn("POST /appointments - Duplicate booking: vendor=%s", requester.Email)
			handlers.RespondConflict(w, msgDuplicate)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: vendor=%s, error=%v", requester.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: code=%s, vendor=%s", created.TrackingCode, requester.Email)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromAppointment(created))
}

// slotUnavailableMessage текст типизированной ошибки слота без обертки
func slotUnavailableMessage(err error) string {
	var blocked *appointments.SlotBlockedError
	if errors.As(err, &blocked) {
		return blocked.Error()
	}
	var full *appointments.CapacityExceededError
	if errors.As(err, &full) {
		return full.Error()
	}
	return msgSlotUnavailable
}
