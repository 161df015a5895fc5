package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL адрес API Brevo
	DefaultBaseURL = "https://api.brevo.com"

	sendEmailPath = "/v3/smtp/email"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент транзакционных писем Brevo
type Client struct {
	baseURL    string
	apiKey     string
	sender     Contact
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Brevo
func NewClient(baseURL, apiKey string, sender Contact, timeout time.Duration, log Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		sender:  sender,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Configured сообщает, заданы ли ключ и адрес отправителя
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.sender.Email != ""
}

// Send отправляет письмо одному адресату
func (c *Client) Send(ctx context.Context, to Contact, subject, html, text string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(Email{
		Sender:      c.sender,
		To:          []Contact{to},
		Subject:     subject,
		HTMLContent: html,
		TextContent: text,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal email: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendEmailPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK, http.StatusAccepted:
		// Продолжаем обработку
	default:
		body, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Email sent to %s, subject=%q, message_id=%s", to.Email, subject, sent.MessageID)
	return sent.MessageID, nil
}
