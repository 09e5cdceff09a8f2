// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/models"
)

// ─────────────────────────────────────────────
// Mock RegistrarService
// ─────────────────────────────────────────────

type mockRegistrarService struct {
	registerFn func(ctx context.Context, candidate models.Consumer) (models.Consumer, error)
	getFn      func(ctx context.Context, id string) (models.Consumer, error)
	listFn     func(ctx context.Context) ([]models.Consumer, error)
	updateFn   func(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockRegistrarService) Register(ctx context.Context, candidate models.Consumer) (models.Consumer, error) {
	return m.registerFn(ctx, candidate)
}

func (m *mockRegistrarService) Get(ctx context.Context, id string) (models.Consumer, error) {
	return m.getFn(ctx, id)
}

func (m *mockRegistrarService) List(ctx context.Context) ([]models.Consumer, error) {
	return m.listFn(ctx)
}

func (m *mockRegistrarService) Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockRegistrarService) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// ─────────────────────────────────────────────
// Mock BillingService
// ─────────────────────────────────────────────

type mockBillingService struct {
	generateFn       func(ctx context.Context, consumerID string, units float64, dueDate time.Time) (models.Bill, error)
	getFn            func(ctx context.Context, billID int64) (models.Bill, error)
	listByConsumerFn func(ctx context.Context, consumerID string) ([]models.Bill, error)
	payFn            func(ctx context.Context, billID int64, method string) (models.Bill, error)
}

func (m *mockBillingService) Generate(ctx context.Context, consumerID string, units float64, dueDate time.Time) (models.Bill, error) {
	return m.generateFn(ctx, consumerID, units, dueDate)
}

func (m *mockBillingService) Get(ctx context.Context, billID int64) (models.Bill, error) {
	return m.getFn(ctx, billID)
}

func (m *mockBillingService) ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error) {
	return m.listByConsumerFn(ctx, consumerID)
}

func (m *mockBillingService) Pay(ctx context.Context, billID int64, method string) (models.Bill, error) {
	return m.payFn(ctx, billID, method)
}

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	loginFn       func(ctx context.Context, email, password string) (models.Token, error)
	createTokenFn func(ctx context.Context, consumerID string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.Token, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, consumerID string) (models.Token, error) {
	return m.createTokenFn(ctx, consumerID)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// allowAllAuth is a parse-anything AuthService used when the test focuses on
// a protected route's handler rather than the middleware itself.
func allowAllAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{ConsumerID: "USER0001"}, nil
		},
	}
}

func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, metrics.NewWith(prometheus.NewRegistry()), logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
