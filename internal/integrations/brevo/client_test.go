package brevo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSend(t *testing.T) {
	var got Email
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, sendEmailPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<abc@brevo>"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", Contact{Email: "desk@dc.example", Name: "Appointment Desk"}, time.Second, nopLogger{})

	id, err := client.Send(context.Background(), Contact{Email: "abc@example.com", Name: "ABC"}, "Appointment Confirmed", "<p>hi</p>", "hi")

	require.NoError(t, err)
	assert.Equal(t, "<abc@brevo>", id)
	assert.Equal(t, "desk@dc.example", got.Sender.Email)
	assert.Equal(t, []Contact{{Email: "abc@example.com", Name: "ABC"}}, got.To)
	assert.Equal(t, "Appointment Confirmed", got.Subject)
}

func TestSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", Contact{Email: "desk@dc.example"}, time.Second, nopLogger{})

	_, err := client.Send(context.Background(), Contact{Email: "abc@example.com"}, "s", "h", "t")

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "Key not found")
}

func TestSendNotConfigured(t *testing.T) {
	client := NewClient("", "", Contact{}, time.Second, nopLogger{})

	assert.False(t, client.Configured())
	_, err := client.Send(context.Background(), Contact{Email: "abc@example.com"}, "s", "h", "t")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
