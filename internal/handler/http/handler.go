package http

import (
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/service"
	"github.com/powergrid-apps/billkeeper/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics
	traceIDs *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  m,
		traceIDs: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}
