package workers

import (
	"context"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/store"
)

// Workers aggregates the application's background workers and starts them
// together.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the worker set from config. Workers whose interval is
// zero are left out.
func NewWorkers(ctx context.Context, storages *store.Storages, cfg config.Workers, m *metrics.Metrics, log *logger.Logger) *Workers {
	var ws []Worker

	if cfg.OverdueSweepInterval > 0 {
		ws = append(ws, NewOverdueSweeper(ctx, storages.BillRepository, cfg.OverdueSweepInterval, m, log))
	}

	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
