package chat

import (
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	chatUC "github.com/m04kA/SMC-AppointmentDesk/internal/usecase/chat"
	"github.com/m04kA/SMC-AppointmentDesk/internal/usecase/execute_action"
)

// ChatRequest HTTP request model
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse HTTP response model
type ChatResponse struct {
	Type        string                      `json:"type"` // success | suggestion | clarification | error
	Message     string                      `json:"message"`
	Data        interface{}                 `json:"data,omitempty"`
	Alternative *execute_action.Alternative `json:"alternative,omitempty"`
	Intent      *domain.Intent              `json:"intent,omitempty"`
	Backend     string                      `json:"backend,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *chatUC.Response) *ChatResponse {
	return &ChatResponse{
		Type:        string(resp.Kind),
		Message:     resp.Message,
		Data:        fromData(resp.Data),
		Alternative: resp.Alternative,
		Intent:      resp.Intent,
		Backend:     string(resp.Backend),
	}
}

// fromData записи отдаются в том же виде, что и в REST методах
func fromData(data interface{}) interface{} {
	switch v := data.(type) {
	case *domain.Appointment:
		return handlers.FromAppointment(v)
	case []*domain.Appointment:
		return handlers.FromAppointments(v)
	default:
		return data
	}
}
