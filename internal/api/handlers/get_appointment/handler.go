package get_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

const (
	msgInvalidTrackingCode = "invalid tracking code, expected 8 digits"
	msgNotFound            = "appointment not found"
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

// Handle GET /api/v1/appointments/{trackingCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["trackingCode"]
	if !domain.IsValidTrackingCode(code) {
		h.logger.Warn("GET /appointments/{code} - Invalid tracking code: %q", code)
		handlers.RespondBadRequest(w, msgInvalidTrackingCode)
		return
	}

	a, err := h.service.GetByTrackingCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, appointments.ErrNotFound) {
			h.logger.Warn("GET /appointments/{code} - Appointment not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /appointments/{code} - Failed to get appointment: code=%s, error=%v", code, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(a))
}
