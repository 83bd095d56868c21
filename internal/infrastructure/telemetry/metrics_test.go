package telemetry

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorders(t *testing.T) {
	m := NewMetrics("az")

	m.ObserveHTTPRequest("GET", "/api/users/:id", 200, 15*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/users/:id", 200, 5*time.Millisecond)
	m.ObserveHTTPRequest("POST", "", 404, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/users/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "unmatched", "404")))

	m.RecordPayment("stripe", "completed", 2500)
	m.RecordPayment("stripe", "failed", 900)
	assert.Equal(t, 2500.0, testutil.ToFloat64(m.paymentCents.WithLabelValues("stripe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues("stripe", "failed")))

	m.RecordWebhook("paypal", "duplicate")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhooks.WithLabelValues("paypal", "duplicate")))

	m.ObserveJob("stale_payment_sweeper", time.Second, nil)
	m.ObserveJob("stale_payment_sweeper", time.Second, errors.New("db down"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("stale_payment_sweeper", "failure")))

	m.SetOverdueRequests(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.overdue))

	m.RecordUpload("recordings", 1024)
	assert.Equal(t, 1024.0, testutil.ToFloat64(m.uploadBytes.WithLabelValues("recordings")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordPayment("paypal", "completed", 1)
		m.RecordWebhook("stripe", "processed")
		m.ObserveJob("x", time.Second, nil)
		m.SetOverdueRequests(1)
		m.RecordUpload("avatars", 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("az")
	m.SetOverdueRequests(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "az_audio_requests_overdue 3")
	assert.Contains(t, string(body), "go_goroutines")
}
