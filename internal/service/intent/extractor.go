package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// ModelExtractor извлекает намерение с помощью языковой модели
type ModelExtractor struct {
	completer   Completer
	isTransient func(error) bool
	logger      Logger
}

// NewModelExtractor создает экстрактор. isTransient классифицирует ошибки провайдера.
func NewModelExtractor(completer Completer, isTransient func(error) bool, logger Logger) *ModelExtractor {
	if isTransient == nil {
		isTransient = func(error) bool { return false }
	}
	return &ModelExtractor{
		completer:   completer,
		isTransient: isTransient,
		logger:      logger,
	}
}

// Extract отправляет запрос модели и разбирает ответ.
// Ответ, не являющийся корректным намерением, превращается в уточнение с исходным текстом.
func (e *ModelExtractor) Extract(ctx context.Context, req Request) (*domain.Resolution, error) {
	raw, err := e.completer.Complete(ctx, buildCompletion(req))
	if err != nil {
		if e.isTransient(err) {
			return nil, fmt.Errorf("%w: %w", ErrTransientProvider, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	intent, err := parseModelOutput(raw)
	if err != nil {
		e.logger.Warn("ModelExtractor.Extract: unusable model output: %v", err)
		return &domain.Resolution{Clarification: raw, Backend: domain.BackendModel}, nil
	}

	return &domain.Resolution{Intent: intent, Backend: domain.BackendModel}, nil
}

// parseModelOutput разбирает JSON-ответ модели в намерение
func parseModelOutput(raw string) (*domain.Intent, error) {
	body := []byte(stripCodeFence(raw))

	var probe map[string]interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrIntentParse, err)
	}

	action, _ := probe["action"].(string)
	switch domain.Action(action) {
	case domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete, domain.ActionQuery:
	default:
		return nil, fmt.Errorf("%w: missing or unknown action %q", ErrIntentParse, action)
	}

	if err := validateIntentJSON(body); err != nil {
		return nil, err
	}

	var intent domain.Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntentParse, err)
	}

	return &intent, nil
}

// stripCodeFence убирает обрамление ```json ... ```, которое модели иногда добавляют
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
