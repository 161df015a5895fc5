package integration_webhook

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

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error

	created    *appointments.CreateRequest
	movedCode  string
	movedDate  time.Time
	movedHour  int
	cancelCode string
}

func (f *fakeService) Create(_ context.Context, req *appointments.CreateRequest) (*domain.Appointment, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{
		Date:         req.Date,
		Hour:         req.Hour,
		Type:         req.Type,
		VendorName:   req.Requester.Name,
		VendorEmail:  req.Requester.Email,
		CarrierName:  req.Requester.CarrierName,
		TrackingCode: "12345678",
	}, nil
}

func (f *fakeService) Reschedule(_ context.Context, code string, date time.Time, hour int) (*domain.Appointment, error) {
	f.movedCode, f.movedDate, f.movedHour = code, date, hour
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{Date: date, Hour: hour, Type: domain.AppointmentTypeDrop, TrackingCode: code}, nil
}

func (f *fakeService) Cancel(_ context.Context, code string) (*domain.Appointment, error) {
	f.cancelCode = code
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{Date: day(19), Hour: 9, Type: domain.AppointmentTypeLive, TrackingCode: code}, nil
}

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)
	return loc
}

func day(d int) time.Time {
	return time.Date(2025, 11, d, 0, 0, 0, 0, time.UTC)
}

func serve(t *testing.T, svc AppointmentService, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/integrations/n8n", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(svc, ist(t), noopLogger{}).Handle(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleBookFromEmail(t *testing.T) {
	svc := &fakeService{}

	rec, resp := serve(t, svc, `[{
		"action": "Schedule",
		"vendor_name": "Acme Foods Ltd.",
		"carrier_name": "ACME",
		"appointment_type": "Live unload",
		"requested_date": "2025-11-19",
		"requested_time": "2:45pm",
		"source_email": {"from": "Ops Team <OPS@Acme.test>", "message_id": "<m-1@mail>"},
		"timezone": "Asia/Kolkata"
	}]`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, day(19), svc.created.Date)
	assert.Equal(t, 15, svc.created.Hour)
	assert.Equal(t, domain.AppointmentTypeLive, svc.created.Type)
	assert.Equal(t, domain.Requester{Name: "Acme Foods Ltd.", Email: "ops@acme.test", CarrierName: "ACME"}, svc.created.Requester)

	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "create", resp["action"])
	assert.Equal(t, "Booked live appointment on 2025-11-19 at 15:00 IST.", resp["message"])
	assert.Equal(t, "12345678", resp["tracking_code"])

	meta := resp["meta"].(map[string]interface{})
	assert.Equal(t, "<m-1@mail>", meta["request_id"])
	assert.Equal(t, "Asia/Kolkata", meta["timezone"])
	assert.Equal(t, "<m-1@mail>", meta["source_email"].(map[string]interface{})["message_id"])
}

func TestHandleRescheduleAndCancel(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAction  string
		wantMessage string
		check       func(t *testing.T, svc *fakeService)
	}{
		{
			name:        "reschedule by appointment id",
			body:        `{"action":"move","appointment_id":87654321,"new_date":"2025-11-20","new_time":"9am","request_id":"r-7"}`,
			wantAction:  "update",
			wantMessage: "Rescheduled appointment 87654321 to 2025-11-20 at 09:00 IST.",
			check: func(t *testing.T, svc *fakeService) {
				assert.Equal(t, "87654321", svc.movedCode)
				assert.Equal(t, day(20), svc.movedDate)
				assert.Equal(t, 9, svc.movedHour)
			},
		},
		{
			name:        "reschedule falls back to requested slot",
			body:        `{"action":"change","appointment_reference":"11112222","date":"2025-11-21","time":"12:30am"}`,
			wantAction:  "update",
			wantMessage: "Rescheduled appointment 11112222 to 2025-11-21 at 01:00 IST.",
			check: func(t *testing.T, svc *fakeService) {
				assert.Equal(t, day(21), svc.movedDate)
				assert.Equal(t, 1, svc.movedHour)
			},
		},
		{
			name:        "cancel by tracking alias",
			body:        `{"action":"remove","tracking":"33334444"}`,
			wantAction:  "delete",
			wantMessage: "Cancelled appointment 33334444.",
			check: func(t *testing.T, svc *fakeService) {
				assert.Equal(t, "33334444", svc.cancelCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}

			rec, resp := serve(t, svc, tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantAction, resp["action"])
			assert.Equal(t, tt.wantMessage, resp["message"])
			assert.Equal(t, "Asia/Kolkata", resp["meta"].(map[string]interface{})["timezone"])
			tt.check(t, svc)
		})
	}
}

func TestHandleErrors(t *testing.T) {
	const booking = `{"action":"book","vendor_name":"Acme","carrier_name":"ACME","type":"drop","date":"2025-11-19","time":"10"}`

	tests := []struct {
		name        string
		body        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "not json", body: `{`, wantStatus: http.StatusBadRequest, wantMessage: msgInvalidRequestBody},
		{name: "empty array", body: `[]`, wantStatus: http.StatusBadRequest, wantMessage: "Request body array must contain at least one item."},
		{name: "scalar", body: `"book"`, wantStatus: http.StatusBadRequest, wantMessage: "Request body must be a JSON object."},
		{name: "unknown action", body: `{"action":"teleport"}`, wantStatus: http.StatusBadRequest, wantMessage: `Unsupported action "teleport". Expected book, reschedule, or cancel.`},
		{name: "no carrier", body: `{"action":"book","vendor_name":"Acme","type":"live","date":"2025-11-19","time":"10"}`, wantStatus: http.StatusBadRequest, wantMessage: "Carrier name is required to create an appointment."},
		{name: "no type", body: `{"action":"book","vendor_name":"Acme","carrier_name":"ACME","type":"cross","date":"2025-11-19","time":"10"}`, wantStatus: http.StatusBadRequest, wantMessage: "Appointment type (live/drop) is required to create an appointment."},
		{name: "bad time", body: `{"action":"book","time":"quarter past"}`, wantStatus: http.StatusBadRequest, wantMessage: "Invalid time value: quarter past"},
		{name: "hour out of range", body: `{"action":"book","time":"25:00"}`, wantStatus: http.StatusBadRequest, wantMessage: "Hour must be between 0 and 23."},
		{name: "bad date", body: `{"action":"book","date":"someday"}`, wantStatus: http.StatusBadRequest, wantMessage: "Invalid date value: someday"},
		{name: "cancel without code", body: `{"action":"cancel"}`, wantStatus: http.StatusBadRequest, wantMessage: "Tracking code is required for reschedule or cancel actions."},
		{name: "reschedule without slot", body: `{"action":"reschedule","tracking_code":"12345678","new_time":"9"}`, wantStatus: http.StatusBadRequest, wantMessage: msgRescheduleTarget},
		{
			name:        "blocked",
			body:        booking,
			err:         &appointments.SlotBlockedError{Hour: 10, Type: domain.AppointmentTypeDrop, Reason: "Maintenance"},
			wantStatus:  http.StatusConflict,
			wantMessage: "Slot 10:00 is blocked. Reason: Maintenance",
		},
		{name: "duplicate", body: booking, err: appointments.ErrDuplicateBooking, wantStatus: http.StatusConflict, wantMessage: msgDuplicate},
		{name: "past", body: booking, err: appointments.ErrPastDate, wantStatus: http.StatusBadRequest, wantMessage: msgPastDate},
		{name: "missing appointment", body: `{"action":"cancel","tracking_code":"99990000"}`, err: appointments.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Appointment 99990000 not found."},
		{name: "internal", body: booking, err: appointments.ErrInternal, wantStatus: http.StatusInternalServerError, wantMessage: msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := serve(t, &fakeService{err: tt.err}, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "error", resp["status"])
			assert.Equal(t, tt.wantMessage, resp["message"])
		})
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"0", 0},
		{"14", 14},
		{"14:29", 14},
		{"14:30", 15},
		{"2pm", 14},
		{"2:45 PM", 15},
		{"12pm", 12},
		{"12am", 0},
		{"11:45pm", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseHour(tt.raw)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestVendorEmailSources(t *testing.T) {
	const slot = `"carrier_name":"ACME","type":"drop","date":"2025-11-19","time":"10"`

	tests := []struct {
		name string
		body string
		want string
	}{
		{"explicit", `{"action":"book","vendor_name":"Acme","vendor_email":"desk@acme.test","source_email":{"from":"x@y.test"},` + slot + `}`, "desk@acme.test"},
		{"sender", `{"action":"book","vendor_name":"Acme","source_email":{"from":"Acme Ops <Ops@Acme.TEST>"},` + slot + `}`, "ops@acme.test"},
		{"from name", `{"action":"book","vendor_name":"Acme Foods & Co.",` + slot + `}`, "acme.foods.co@gmail.com"},
		{"name without letters", `{"action":"book","vendor_name":"***",` + slot + `}`, "vendor@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParsePayload(json.RawMessage(tt.body), time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.VendorEmail)
		})
	}
}

func TestParsePayloadFreeFormDate(t *testing.T) {
	cmd, err := ParsePayload(json.RawMessage(`{"action":"cancel","tracking_code":"12345678","date":"19 Nov 2025"}`), time.UTC)
	require.NoError(t, err)
	require.NotNil(t, cmd.Date)
	assert.Equal(t, day(19), *cmd.Date)
	assert.Equal(t, "UTC", cmd.Timezone)
}
