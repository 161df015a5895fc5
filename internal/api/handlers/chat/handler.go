package chat

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/middleware"
	chatUC "github.com/m04kA/SMC-AppointmentDesk/internal/usecase/chat"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmptyMessage       = "message is required"
	msgMissingVendor      = "vendor is not identified"
)

type Handler struct {
	useCase ChatUseCase
	logger  Logger
}

func NewHandler(useCase ChatUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/chat
// Результат разбора (успех, предложение, уточнение, ошибка правил) всегда 200,
// тип результата передается в поле type.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingVendor)
		return
	}

	var req ChatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chat - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &chatUC.Request{
		Message:   req.Message,
		Requester: requester,
	})
	if err != nil {
		if errors.Is(err, chatUC.ErrInvalidInput) {
			h.logger.Warn("POST /chat - Invalid input: vendor=%s, error=%v", requester.Email, err)
			handlers.RespondBadRequest(w, msgEmptyMessage)
			return
		}
		h.logger.Error("POST /chat - Failed to process message: vendor=%s, error=%v", requester.Email, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
