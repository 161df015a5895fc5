package chat

import (
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/usecase/execute_action"
)

// Request сообщение вендора
type Request struct {
	Message   string
	Requester domain.Requester
}

// Response ответ ассистента
type Response struct {
	Kind        execute_action.ResultKind
	Message     string
	Data        interface{}
	Alternative *execute_action.Alternative
	Backend     domain.IntentBackend
	Intent      *domain.Intent
}

const (
	msgProviderError = "I encountered an error processing your request. Please try again in a moment."
	msgStartOver     = "Okay, let's start over. How can I help with your appointments?"
)

// resetPhrases сообщения, которые очищают историю диалога вместо разбора
var resetPhrases = map[string]struct{}{
	"start over":       {},
	"start again":      {},
	"reset":            {},
	"new conversation": {},
	"clear history":    {},
	"forget it":        {},
}
