package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Counters(t *testing.T) {
	r := New()
	r.MovementRecorded("in")
	r.MovementRecorded("in")
	r.MovementRejected("out", "INSUFFICIENT_STOCK")
	r.NotificationSent(true)
	r.NotificationSent(false)
	r.SetAlertItems("", 3, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.movements.WithLabelValues("in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("out", "INSUFFICIENT_STOCK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notifications.WithLabelValues("failed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.alertItems.WithLabelValues("all", "low")))
}

func TestRegistry_Handler(t *testing.T) {
	r := New()
	r.ObserveHTTP(http.MethodGet, "/api/v1/inventory", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `backoffice_http_requests_total{method="GET",route="/api/v1/inventory",status="200"} 1`)
}
