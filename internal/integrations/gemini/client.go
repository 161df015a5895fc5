package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const jsonMIMEType = "application/json"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Client клиент Gemini с локальным ограничением частоты запросов
type Client struct {
	client    *genai.Client
	modelName string
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    Logger
}

// NewClient создает клиент. requestsPerMinute <= 0 отключает локальный лимит.
func NewClient(ctx context.Context, apiKey, modelName string, requestsPerMinute int, timeout time.Duration, logger Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrInternal, err)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	}

	return &Client{
		client:    client,
		modelName: modelName,
		limiter:   limiter,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Complete отправляет диалог модели и возвращает текст ответа
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("%w: no messages", ErrInternal)
	}

	if !c.limiter.Allow() {
		c.logger.Warn("Complete: local rate limit reached, request rejected")
		return "", ErrRateLimited
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// Модель собирается на каждый запрос: настройки генерации не должны делиться между горутинами
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(req.Temperature)
	if req.JSONResponse {
		model.ResponseMIMEType = jsonMIMEType
	}
	if req.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}

	history := toContents(req.Messages[:len(req.Messages)-1])
	parts := []genai.Part{genai.Text(req.Messages[len(req.Messages)-1].Text)}

	// История не может заканчиваться репликой пользователя: она уходит вместе с запросом
	if n := len(history); n > 0 && history[n-1].Role == string(domain.PromptRoleUser) {
		parts = append(history[n-1].Parts, parts...)
		history = history[:n-1]
	}

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, parts...)
	if err != nil {
		return "", classify(err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// Close освобождает соединения клиента
func (c *Client) Close() error {
	return c.client.Close()
}

// toContents переводит сообщения в историю чата.
// Подряд идущие сообщения одной роли склеиваются: API требует чередования ролей.
func toContents(messages []domain.PromptMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := string(m.Role)
		if role != string(domain.PromptRoleModel) {
			role = string(domain.PromptRoleUser)
		}

		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.Text(m.Text))
			continue
		}

		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
