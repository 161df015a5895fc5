package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		transient bool
	}{
		{"rest 429", &googleapi.Error{Code: 429}, ErrRateLimited, true},
		{"rest 503", &googleapi.Error{Code: 503}, ErrUnavailable, true},
		{"rest 400", &googleapi.Error{Code: 400}, ErrInternal, false},
		{"grpc resource exhausted", status.Error(codes.ResourceExhausted, "quota"), ErrRateLimited, true},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable, true},
		{"grpc invalid argument", status.Error(codes.InvalidArgument, "bad"), ErrInternal, false},
		{"deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), ErrUnavailable, true},
		{"unknown", errors.New("boom"), ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.transient, IsTransient(err))
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestCompleteRejectsWhenLocallyThrottled(t *testing.T) {
	c := &Client{
		limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
		logger:  nopLogger{},
	}
	c.limiter.Allow()

	_, err := c.Complete(context.Background(), domain.CompletionRequest{
		Messages: []domain.PromptMessage{{Role: domain.PromptRoleUser, Text: "hi"}},
	})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.True(t, IsTransient(err))
}

func TestToContentsMergesConsecutiveRoles(t *testing.T) {
	contents := toContents([]domain.PromptMessage{
		{Role: domain.PromptRoleUser, Text: "a"},
		{Role: domain.PromptRoleUser, Text: "b"},
		{Role: domain.PromptRoleModel, Text: "c"},
		{Role: "assistant", Text: "d"},
	})

	assert.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, []genai.Part{genai.Text("a"), genai.Text("b")}, contents[0].Parts)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "user", contents[2].Role)
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(" {\"action\":"), genai.Text("\"query\"} ")}},
		}},
	}
	assert.Equal(t, `{"action":"query"}`, responseText(resp))
}
