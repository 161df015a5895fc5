package integration_webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

const (
	msgInvalidRequestBody = "Request body must be a JSON object."
	msgRescheduleTarget   = "Reschedule requests must include the new date and time."
	msgInvalidInput       = "Appointment details are invalid."
	msgPastDate           = "Cannot book appointments in the past."
	msgDuplicate          = "This vendor already has an appointment in this slot."
	msgNotFound           = "Appointment %s not found."
	msgInternal           = "Internal server error."

	msgBooked      = "Booked %s appointment on %s at %s."
	msgRescheduled = "Rescheduled appointment %s to %s at %s."
	msgCancelled   = "Cancelled appointment %s."
)

// Handler принимает запросы из почтовой автоматизации (n8n)
type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/integrations/n8n
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := handlers.DecodeJSONLoose(r, &raw); err != nil {
		h.logger.Warn("POST /integrations/n8n - Invalid request body: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgInvalidRequestBody))
		return
	}

	cmd, err := ParsePayload(raw, h.location)
	if err != nil {
		h.logger.Warn("POST /integrations/n8n - Invalid payload: %v", err)
		handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var (
		result  *domain.Appointment
		message string
	)

	switch cmd.Action {
	case ActionCreate:
		result, err = h.service.Create(r.Context(), &appointments.CreateRequest{
			Date:      *cmd.Date,
			Hour:      *cmd.Hour,
			Type:      cmd.Type,
			Requester: cmd.Requester(),
		})
		if err == nil {
			message = fmt.Sprintf(msgBooked, cmd.Type, cmd.Date.Format(domain.DateFormat), h.slotLabel(*cmd.Date, *cmd.Hour))
		}

	case ActionUpdate:
		date, hour, ok := cmd.RescheduleTarget()
		if !ok {
			h.logger.Warn("POST /integrations/n8n - Reschedule without target: code=%s", cmd.TrackingCode)
			handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgRescheduleTarget))
			return
		}
		result, err = h.service.Reschedule(r.Context(), cmd.TrackingCode, date, hour)
		if err == nil {
			message = fmt.Sprintf(msgRescheduled, cmd.TrackingCode, date.Format(domain.DateFormat), h.slotLabel(date, hour))
		}

	case ActionDelete:
		result, err = h.service.Cancel(r.Context(), cmd.TrackingCode)
		if err == nil {
			message = fmt.Sprintf(msgCancelled, cmd.TrackingCode)
		}
	}

	if err != nil {
		h.respondServiceError(w, cmd, err)
		return
	}

	h.logger.Info("POST /integrations/n8n - %s done: code=%s, request_id=%s", cmd.Action, result.TrackingCode, cmd.RequestID)

	code := result.TrackingCode
	handlers.RespondJSON(w, http.StatusOK, &Response{
		Status:       statusSuccess,
		Action:       cmd.Action,
		Message:      message,
		TrackingCode: &code,
		Appointment:  handlers.FromAppointment(result),
		Meta:         newMeta(cmd),
	})
}

func (h *Handler) respondServiceError(w http.ResponseWriter, cmd *Command, err error) {
	var blocked *appointments.SlotBlockedError
	var full *appointments.CapacityExceededError

	switch {
	case errors.As(err, &blocked):
		h.logger.Warn("POST /integrations/n8n - Slot blocked: action=%s, error=%v", cmd.Action, err)
		handlers.RespondJSON(w, http.StatusConflict, errorResponse(blocked.Error()))

	case errors.As(err, &full):
		h.logger.Warn("POST /integrations/n8n - Slot full: action=%s, error=%v", cmd.Action, err)
		handlers.RespondJSON(w, http.StatusConflict, errorResponse(full.Error()))

	case errors.Is(err, appointments.ErrDuplicateBooking):
		h.logger.Warn("POST /integrations/n8n - Duplicate booking: vendor=%s", cmd.VendorEmail)
		handlers.RespondJSON(w, http.StatusConflict, errorResponse(msgDuplicate))

	case errors.Is(err, appointments.ErrPastDate):
		h.logger.Warn("POST /integrations/n8n - Past slot: action=%s", cmd.Action)
		handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgPastDate))

	case errors.Is(err, appointments.ErrInvalidInput):
		h.logger.Warn("POST /integrations/n8n - Invalid input: action=%s, error=%v", cmd.Action, err)
		handlers.RespondJSON(w, http.StatusBadRequest, errorResponse(msgInvalidInput))

	case errors.Is(err, appointments.ErrNotFound):
		h.logger.Warn("POST /integrations/n8n - Appointment not found: code=%s", cmd.TrackingCode)
		handlers.RespondJSON(w, http.StatusNotFound, errorResponse(fmt.Sprintf(msgNotFound, cmd.TrackingCode)))

	default:
		h.logger.Error("POST /integrations/n8n - Failed to %s appointment: request_id=%s, error=%v", cmd.Action, cmd.RequestID, err)
		handlers.RespondJSON(w, http.StatusInternalServerError, errorResponse(msgInternal))
	}
}

// slotLabel "14:00 IST": час и сокращение часового пояса площадки на эту дату
func (h *Handler) slotLabel(date time.Time, hour int) string {
	local := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, h.location)
	return fmt.Sprintf("%02d:00 %s", hour, local.Format("MST"))
}
