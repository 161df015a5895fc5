package get_appointments

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

const msgMissingVendorEmail = "vendor_email is required"

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

// Handle GET /api/v1/appointments?vendor_email=
// Без параметра берется вендор из заголовка X-Vendor-Email.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("vendor_email"))
	if email == "" {
		email = strings.TrimSpace(r.Header.Get(middleware.HeaderVendorEmail))
	}
	if email == "" {
		handlers.RespondBadRequest(w, msgMissingVendorEmail)
		return
	}

	list, err := h.service.GetUserAppointments(r.Context(), email)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingVendorEmail)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: vendor=%s, error=%v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - vendor=%s, count=%d", email, len(list))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointments(list))
}
