package brevo

// Contact адресат или отправитель письма
type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Email транзакционное письмо
type Email struct {
	Sender      Contact   `json:"sender"`
	To          []Contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
	TextContent string    `json:"textContent,omitempty"`
}

// SendResponse ответ Brevo на отправку письма
type SendResponse struct {
	MessageID string `json:"messageId"`
}

// ErrorResponse модель ошибки Brevo
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
