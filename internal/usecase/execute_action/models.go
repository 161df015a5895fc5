package execute_action

import "github.com/m04kA/SMC-AppointmentDesk/internal/domain"

// ResultKind вид результата выполнения намерения
type ResultKind string

const (
	KindSuccess       ResultKind = "success"
	KindSuggestion    ResultKind = "suggestion"
	KindClarification ResultKind = "clarification"
	KindError         ResultKind = "error"
)

// Alternative слот, предлагаемый вместо недоступного
type Alternative struct {
	Date string                 `json:"date"`
	Hour int                    `json:"hour"`
	Type domain.AppointmentType `json:"type"`
}

// Result результат выполнения намерения.
// Data: *domain.Appointment для create/update/delete, []*domain.Appointment для my_appointments,
// []int со свободными часами для availability.
type Result struct {
	Kind        ResultKind
	Message     string
	Data        interface{}
	Alternative *Alternative
}

func success(message string, data interface{}) *Result {
	return &Result{Kind: KindSuccess, Message: message, Data: data}
}

func clarification(message string) *Result {
	return &Result{Kind: KindClarification, Message: message}
}

func failure(message string) *Result {
	return &Result{Kind: KindError, Message: message}
}
