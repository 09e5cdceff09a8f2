// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

// Package service contains the application's business logic: consumer
// registration with sequential identifier allocation, bill generation and
// settlement, and JWT-based authentication. It sits between the HTTP
// handlers and the store layer and owns every domain rule that does not
// belong to either.
package service

import (
	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/store"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	RegistrarService
	BillingService
	AuthService
}

// NewServices wires all services to the given repositories and config.
func NewServices(storages *store.Storages, cfg config.App, m *metrics.Metrics, logger *logger.Logger) *Services {
	return &Services{
		RegistrarService: NewRegistrarService(storages.ConsumerRepository, cfg, m, logger),
		BillingService:   NewBillingService(storages.BillRepository, storages.ConsumerRepository, cfg, m, logger),
		AuthService:      NewAuthService(storages.ConsumerRepository, cfg, logger),
	}
}
