package get_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	views []domain.SlotView
	err   error
}

func (f *fakeService) GetSlots(context.Context, time.Time) ([]domain.SlotView, error) {
	return f.views, f.err
}

func TestHandleReturnsDay(t *testing.T) {
	views := make([]domain.SlotView, domain.HoursPerDay)
	for h := range views {
		views[h] = domain.SlotView{Hour: h, Available: true}
	}
	views[14] = domain.SlotView{Hour: 14, IsBlocked: true, BlockedReason: "Maintenance"}

	rec := httptest.NewRecorder()
	NewHandler(&fakeService{views: views}, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2025-11-19", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-11-19", resp.Date)
	require.Len(t, resp.Slots, domain.HoursPerDay)
	assert.True(t, resp.Slots[14].IsBlocked)
	assert.Equal(t, "Maintenance", resp.Slots[14].BlockedReason)
	assert.False(t, resp.Slots[14].Available)
}

func TestHandleBadRequests(t *testing.T) {
	h := NewHandler(&fakeService{}, noopLogger{})

	for _, target := range []string{"/api/v1/slots", "/api/v1/slots?date=19-11-2025"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db down")}, noopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2025-11-19", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
