package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	appfinance "github.com/audiozoom/backend/internal/application/finance"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) completedPayment(t *testing.T, orderID string, method finance.PaymentMethod, amount int64) {
	t.Helper()
	payment, err := finance.NewPendingPayment(finance.NewPaymentInput{
		OrderID:     orderID,
		Method:      method,
		Amount:      amount,
		PodcasterID: uuid.New(),
		CustomerID:  uuid.New(),
	})
	require.NoError(t, err)
	_, err = payment.Complete("", time.Now())
	require.NoError(t, err)
	require.NoError(t, ts.payments.Create(context.Background(), payment))
}

func TestAdminHandler_Revenue(t *testing.T) {
	ts := newTestServer(t)
	_, adminToken := ts.createUser(t, "admin@example.com", "Admin", asAdmin)
	_, fanToken := ts.createUser(t, "fan@example.com", "Fan")

	t.Run("requires admin", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/admin/revenue", nil, fanToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ERR_FORBIDDEN", errorCode(t, w))
	})

	t.Run("requires authentication", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/admin/revenue", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/admin/revenue?startDate=yesterday", nil, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_DATE", errorCode(t, w))
	})

	t.Run("empty report", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/admin/revenue", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var report appfinance.RevenueReport
		decodeData(t, w, &report)
		assert.Zero(t, report.TotalRevenue.Count)
		assert.Zero(t, report.TotalRevenue.TotalAmount)
	})

	t.Run("completed payments only", func(t *testing.T) {
		ts.completedPayment(t, "pi_a", finance.PaymentMethodStripe, 2500)
		ts.completedPayment(t, "pi_b", finance.PaymentMethodStripe, 1000)
		pending, err := finance.NewPendingPayment(finance.NewPaymentInput{
			OrderID: "pi_pending", Method: finance.PaymentMethodStripe, Amount: 9999,
			PodcasterID: uuid.New(), CustomerID: uuid.New(),
		})
		require.NoError(t, err)
		require.NoError(t, ts.payments.Create(context.Background(), pending))

		w := ts.do(t, http.MethodGet, "/api/admin/revenue", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var report appfinance.RevenueReport
		decodeData(t, w, &report)
		assert.Equal(t, int64(2), report.TotalRevenue.Count)
		assert.Equal(t, int64(3500), report.TotalRevenue.TotalAmount)
		assert.Equal(t, int64(1400), report.TotalRevenue.TotalPlatformFee)
		require.Len(t, report.RevenueByMethod, 1)
		assert.Len(t, report.DailyRevenue, 1)
	})

	t.Run("window before any payment", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/admin/revenue?endDate=2000-01-01", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var report appfinance.RevenueReport
		decodeData(t, w, &report)
		assert.Zero(t, report.TotalRevenue.Count)
	})
}
