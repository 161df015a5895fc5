package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/intent"
	"github.com/m04kA/SMC-AppointmentDesk/internal/usecase/execute_action"
)

// UseCase один ход диалога: история, разбор, выполнение, запись хода в историю
type UseCase struct {
	conversations ConversationStore
	resolver      IntentResolver
	executor      ActionExecutor
	location      *time.Location
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	conversations ConversationStore,
	resolver IntentResolver,
	executor ActionExecutor,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		conversations: conversations,
		resolver:      resolver,
		executor:      executor,
		location:      location,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute обрабатывает сообщение вендора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Chat: validation failed: %v", err)
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	identity := strings.ToLower(strings.TrimSpace(req.Requester.Email))

	if isResetPhrase(message) {
		return uc.startOver(ctx, identity, message), nil
	}

	// История только подсказка: без нее разбор все равно возможен
	history, err := uc.conversations.History(ctx, identity)
	if err != nil {
		uc.logger.Warn("Chat: failed to load history for %s: %v", identity, err)
		history = nil
	}

	resolution, err := uc.resolver.Resolve(ctx, intent.Request{
		Text:      message,
		Requester: req.Requester,
		History:   history,
		Now:       uc.timeProvider.Now().In(uc.location),
	})

	var resp *Response
	switch {
	case err != nil:
		uc.logger.Error("Chat: intent resolution failed for %s: %v", identity, err)
		resp = &Response{Kind: execute_action.KindError, Message: msgProviderError, Backend: domain.BackendModel}
	case resolution.NeedsClarification():
		resp = &Response{
			Kind:    execute_action.KindClarification,
			Message: resolution.Clarification,
			Backend: resolution.Backend,
			Intent:  resolution.Intent,
		}
	default:
		result := uc.executor.Execute(ctx, resolution.Intent, req.Requester)
		resp = &Response{
			Kind:        result.Kind,
			Message:     result.Message,
			Data:        result.Data,
			Alternative: result.Alternative,
			Backend:     resolution.Backend,
			Intent:      resolution.Intent,
		}
	}

	err = uc.conversations.Append(ctx, identity,
		domain.ConversationTurn{Role: domain.RoleUser, Content: message},
		domain.ConversationTurn{Role: domain.RoleAssistant, Content: resp.Message},
	)
	if err != nil {
		uc.logger.Warn("Chat: failed to save history for %s: %v", identity, err)
	}

	uc.logInteraction(identity, message, resp)

	return resp, nil
}

// startOver очищает историю: следующий ход разбирается без прежнего контекста
func (uc *UseCase) startOver(ctx context.Context, identity, message string) *Response {
	resp := &Response{Kind: execute_action.KindSuccess, Message: msgStartOver}

	if err := uc.conversations.Reset(ctx, identity); err != nil {
		uc.logger.Error("Chat: failed to reset history for %s: %v", identity, err)
		resp = &Response{Kind: execute_action.KindError, Message: msgProviderError}
	}

	uc.logInteraction(identity, message, resp)
	return resp
}

func isResetPhrase(message string) bool {
	normalized := strings.Trim(strings.ToLower(message), " .!")
	_, ok := resetPhrases[normalized]
	return ok
}

// logInteraction запись хода для последующего анализа качества разбора
func (uc *UseCase) logInteraction(identity, message string, resp *Response) {
	action := "-"
	if resp.Intent != nil {
		action = string(resp.Intent.Action)
		if resp.Intent.QueryType != "" {
			action += "/" + string(resp.Intent.QueryType)
		}
	}

	uc.logger.Info("Chat: vendor=%s, backend=%s, action=%s, result=%s, message=%q",
		identity, resp.Backend, action, resp.Kind, message)
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Requester.Email) == "" {
		return fmt.Errorf("%w: vendor email is required", ErrInvalidInput)
	}
	return nil
}
