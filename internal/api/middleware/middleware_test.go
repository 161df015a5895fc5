package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/pkg/metrics"
)

func TestRequestIDGeneratesAndKeeps(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, incoming, seen)
}

func TestVendorRejectsInvalidEmail(t *testing.T) {
	called := false
	h := Vendor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderVendorEmail, "not-an-email")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestVendorPutsRequesterIntoContext(t *testing.T) {
	h := Vendor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requester, ok := GetRequester(r.Context())
		require.True(t, ok)
		assert.Equal(t, "ops@acme.test", requester.Email)
		assert.Equal(t, "Blue Line", requester.CarrierName)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderVendorEmail, " OPS@acme.test ")
	req.Header.Set(HeaderCarrierName, "Blue Line")
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/appointments/{trackingCode}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/appointments/12345678", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/appointments/{trackingCode}", "404")))
}
