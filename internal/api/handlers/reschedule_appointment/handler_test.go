package reschedule_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Reschedule(_ context.Context, code string, date time.Time, hour int) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{TrackingCode: code, Date: date, Hour: hour, Type: domain.AppointmentTypeLive}, nil
}

func serve(svc AppointmentService, code, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{trackingCode}", NewHandler(svc, noopLogger{}).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+code, strings.NewReader(body)))
	return rec
}

func TestHandleRescheduled(t *testing.T) {
	rec := serve(&fakeService{}, "30238322", `{"date":"2025-11-20","hour":13}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "30238322", resp.TrackingCode)
	assert.Equal(t, "2025-11-20", resp.Date)
	assert.Equal(t, 13, resp.Hour)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad code", code: "1234", body: `{"date":"2025-11-20","hour":13}`, wantStatus: http.StatusBadRequest},
		{name: "missing hour", code: "30238322", body: `{"date":"2025-11-20"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", code: "30238322", body: `{"date":"2025-11-20","hour":13}`, err: appointments.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "past", code: "30238322", body: `{"date":"2025-11-20","hour":13}`, err: appointments.ErrPastDate, wantStatus: http.StatusBadRequest},
		{
			name:       "wrapped capacity",
			code:       "30238322",
			body:       `{"date":"2025-11-20","hour":13}`,
			err:        fmt.Errorf("tx: %w", &appointments.CapacityExceededError{Hour: 13, Type: domain.AppointmentTypeLive}),
			wantStatus: http.StatusConflict,
		},
		{name: "internal", code: "30238322", body: `{"date":"2025-11-20","hour":13}`, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.code, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
