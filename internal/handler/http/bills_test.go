package http

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

	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/models"
)

func newBillRouter(t *testing.T, billing *mockBillingService) http.Handler {
	t.Helper()
	h := newTestHandler(t, &service.Services{
		BillingService: billing,
		AuthService:    allowAllAuth(),
	})
	return h.Init()
}

func TestGenerateBill_Success(t *testing.T) {
	dueDate := time.Now().Add(14 * 24 * time.Hour).UTC().Truncate(time.Second)
	billing := &mockBillingService{
		generateFn: func(_ context.Context, consumerID string, units float64, got time.Time) (models.Bill, error) {
			assert.Equal(t, "USER0001", consumerID)
			assert.Equal(t, 120.5, units)
			assert.True(t, dueDate.Equal(got))
			return models.Bill{BillID: 7, ConsumerID: consumerID, Amount: 903.75, Status: models.BillStatusPending}, nil
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, generateBillRequest{UnitsConsumed: 120.5, DueDate: dueDate})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/users/USER0001/bills", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var bill models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
	assert.Equal(t, int64(7), bill.BillID)
	assert.Equal(t, models.BillStatusPending, bill.Status)
}

func TestGenerateBill_UnknownConsumer(t *testing.T) {
	billing := &mockBillingService{
		generateFn: func(_ context.Context, _ string, _ float64, _ time.Time) (models.Bill, error) {
			return models.Bill{}, store.ErrConsumerNotFound
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, generateBillRequest{UnitsConsumed: 10, DueDate: time.Now()})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/users/USER0404/bills", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateBill_InvalidUnits(t *testing.T) {
	billing := &mockBillingService{
		generateFn: func(_ context.Context, _ string, _ float64, _ time.Time) (models.Bill, error) {
			return models.Bill{}, service.ErrInvalidDataProvided
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, generateBillRequest{UnitsConsumed: -3, DueDate: time.Now()})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/users/USER0001/bills", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBills_Success(t *testing.T) {
	billing := &mockBillingService{
		listByConsumerFn: func(_ context.Context, consumerID string) ([]models.Bill, error) {
			return []models.Bill{{BillID: 1, ConsumerID: consumerID}, {BillID: 2, ConsumerID: consumerID}}, nil
		},
	}
	router := newBillRouter(t, billing)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/users/USER0001/bills", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var bills []models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bills))
	require.Len(t, bills, 2)
}

func TestGetBill_Success(t *testing.T) {
	billing := &mockBillingService{
		getFn: func(_ context.Context, billID int64) (models.Bill, error) {
			return models.Bill{BillID: billID, Status: models.BillStatusPending}, nil
		},
	}
	router := newBillRouter(t, billing)

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/bills/7", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetBill_InvalidID(t *testing.T) {
	router := newBillRouter(t, &mockBillingService{})

	req := authorized(httptest.NewRequest(http.MethodGet, "/api/bills/not-a-number", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayBill_Success(t *testing.T) {
	billing := &mockBillingService{
		payFn: func(_ context.Context, billID int64, method string) (models.Bill, error) {
			assert.Equal(t, int64(7), billID)
			assert.Equal(t, "CARD", method)
			return models.Bill{BillID: billID, Status: models.BillStatusPaid, PaymentMethod: method}, nil
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, payBillRequest{PaymentMethod: "CARD"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/bills/7/pay", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var bill models.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bill))
	assert.Equal(t, models.BillStatusPaid, bill.Status)
}

func TestPayBill_AlreadyPaid(t *testing.T) {
	billing := &mockBillingService{
		payFn: func(_ context.Context, _ int64, _ string) (models.Bill, error) {
			return models.Bill{}, store.ErrBillAlreadyPaid
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, payBillRequest{PaymentMethod: "CARD"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/bills/7/pay", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestPayBill_NotFound(t *testing.T) {
	billing := &mockBillingService{
		payFn: func(_ context.Context, _ int64, _ string) (models.Bill, error) {
			return models.Bill{}, store.ErrBillNotFound
		},
	}
	router := newBillRouter(t, billing)

	body := jsonBody(t, payBillRequest{PaymentMethod: "CARD"})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/bills/404/pay", strings.NewReader(body)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
