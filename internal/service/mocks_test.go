// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

package service

import (
	"context"
	"errors"
	"time"

	"github.com/powergrid-apps/billkeeper/models"
)

// ─────────────────────────────────────────────
// Mock: store.ConsumerRepository
// ─────────────────────────────────────────────

type mockConsumerRepository struct {
	maxSuffixFn          func(ctx context.Context, prefix string) (int, error)
	createFn             func(ctx context.Context, consumer models.Consumer) (models.Consumer, error)
	findByIDFn           func(ctx context.Context, id string) (models.Consumer, error)
	findByEmailFn        func(ctx context.Context, email string) (models.Consumer, error)
	listFn               func(ctx context.Context) ([]models.Consumer, error)
	updateFn             func(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error)
	deleteFn             func(ctx context.Context, id string) error
	existsByNationalIDFn func(ctx context.Context, nationalID, excludeID string) (bool, error)
	existsByEmailFn      func(ctx context.Context, email, excludeID string) (bool, error)
}

func (m *mockConsumerRepository) MaxSuffix(ctx context.Context, prefix string) (int, error) {
	if m.maxSuffixFn != nil {
		return m.maxSuffixFn(ctx, prefix)
	}
	return 0, nil
}

func (m *mockConsumerRepository) Create(ctx context.Context, consumer models.Consumer) (models.Consumer, error) {
	if m.createFn != nil {
		return m.createFn(ctx, consumer)
	}
	return consumer, nil
}

func (m *mockConsumerRepository) FindByID(ctx context.Context, id string) (models.Consumer, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return models.Consumer{ID: id}, nil
}

func (m *mockConsumerRepository) FindByEmail(ctx context.Context, email string) (models.Consumer, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.Consumer{Email: email}, nil
}

func (m *mockConsumerRepository) List(ctx context.Context) ([]models.Consumer, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumerRepository) Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return models.Consumer{ID: id}, nil
}

func (m *mockConsumerRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockConsumerRepository) ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	if m.existsByNationalIDFn != nil {
		return m.existsByNationalIDFn(ctx, nationalID, excludeID)
	}
	return false, nil
}

func (m *mockConsumerRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email, excludeID)
	}
	return false, nil
}

// ─────────────────────────────────────────────
// Mock: store.BillRepository
// ─────────────────────────────────────────────

type mockBillRepository struct {
	createFn              func(ctx context.Context, bill models.Bill) (models.Bill, error)
	findByIDFn            func(ctx context.Context, billID int64) (models.Bill, error)
	listByConsumerFn      func(ctx context.Context, consumerID string) ([]models.Bill, error)
	markPaidFn            func(ctx context.Context, billID int64, method string, paidAt time.Time) (models.Bill, error)
	countOverduePendingFn func(ctx context.Context, asOf time.Time) (int, error)
}

func (m *mockBillRepository) Create(ctx context.Context, bill models.Bill) (models.Bill, error) {
	if m.createFn != nil {
		return m.createFn(ctx, bill)
	}
	bill.BillID = 1
	return bill, nil
}

func (m *mockBillRepository) FindByID(ctx context.Context, billID int64) (models.Bill, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, billID)
	}
	return models.Bill{BillID: billID}, nil
}

func (m *mockBillRepository) ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error) {
	if m.listByConsumerFn != nil {
		return m.listByConsumerFn(ctx, consumerID)
	}
	return nil, nil
}

func (m *mockBillRepository) MarkPaid(ctx context.Context, billID int64, method string, paidAt time.Time) (models.Bill, error) {
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, billID, method, paidAt)
	}
	return models.Bill{BillID: billID, Status: models.BillStatusPaid}, nil
}

func (m *mockBillRepository) CountOverduePending(ctx context.Context, asOf time.Time) (int, error) {
	if m.countOverduePendingFn != nil {
		return m.countOverduePendingFn(ctx, asOf)
	}
	return 0, nil
}

var errStorage = errors.New("storage error")
