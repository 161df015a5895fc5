package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *appointments.CreateRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *appointments.CreateRequest) (*domain.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		Date:         req.Date,
		Hour:         req.Hour,
		Type:         req.Type,
		VendorName:   req.Requester.Name,
		VendorEmail:  req.Requester.Email,
		TrackingCode: "12345678",
	}, nil
}

var requester = domain.Requester{Name: "Acme", Email: "ops@acme.test"}

func serve(t *testing.T, svc AppointmentService, body string, withVendor bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if withVendor {
		req = req.WithContext(middleware.WithRequester(req.Context(), requester))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, noopLogger{}).Handle(rec, req)
	return rec
}

func TestHandleCreated(t *testing.T) {
	svc := &fakeService{}

	rec := serve(t, svc, `{"date":"2025-11-19","hour":10,"type":"Live"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handlers.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "12345678", resp.TrackingCode)
	assert.Equal(t, "2025-11-19", resp.Date)
	assert.Equal(t, 10, resp.Hour)
	assert.Equal(t, "live", resp.Type)
	assert.Equal(t, requester, svc.got.Requester)
	assert.Equal(t, time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC), svc.got.Date)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		withVendor bool
		wantStatus int
		wantError  string
	}{
		{name: "no vendor", body: `{}`, wantStatus: http.StatusUnauthorized, wantError: msgMissingVendor},
		{name: "bad json", body: `{`, withVendor: true, wantStatus: http.StatusBadRequest, wantError: msgInvalidRequestBody},
		{name: "unknown field", body: `{"date":"2025-11-19","hour":1,"type":"live","x":1}`, withVendor: true, wantStatus: http.StatusBadRequest, wantError: msgInvalidRequestBody},
		{name: "missing hour", body: `{"date":"2025-11-19","type":"live"}`, withVendor: true, wantStatus: http.StatusBadRequest, wantError: msgInvalidFields},
		{name: "bad type", body: `{"date":"2025-11-19","hour":1,"type":"cross"}`, withVendor: true, wantStatus: http.StatusBadRequest, wantError: msgInvalidFields},
		{name: "past", body: `{"date":"2025-11-19","hour":1,"type":"live"}`, err: appointments.ErrPastDate, withVendor: true, wantStatus: http.StatusBadRequest, wantError: msgPastDate},
		{
			name:       "live slot taken",
			body:       `{"date":"2025-11-19","hour":10,"type":"live"}`,
			err:        &appointments.CapacityExceededError{Hour: 10, Type: domain.AppointmentTypeLive},
			withVendor: true,
			wantStatus: http.StatusConflict,
			wantError:  "Slot 10:00 already has a live appointment",
		},
		{
			name:       "blocked",
			body:       `{"date":"2025-11-19","hour":14,"type":"drop"}`,
			err:        &appointments.SlotBlockedError{Hour: 14, Type: domain.AppointmentTypeDrop, Reason: "Maintenance"},
			withVendor: true,
			wantStatus: http.StatusConflict,
			wantError:  "Slot 14:00 is blocked. Reason: Maintenance",
		},
		{name: "duplicate", body: `{"date":"2025-11-19","hour":10,"type":"drop"}`, err: appointments.ErrDuplicateBooking, withVendor: true, wantStatus: http.StatusConflict, wantError: msgDuplicate},
		{name: "internal", body: `{"date":"2025-11-19","hour":10,"type":"drop"}`, err: appointments.ErrInternal, withVendor: true, wantStatus: http.StatusInternalServerError, wantError: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeService{err: tt.err}, tt.body, tt.withVendor)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}
