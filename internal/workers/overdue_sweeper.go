package workers

import (
	"context"
	"time"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/store"
)

// OverdueSweeper periodically counts pending bills past their due date and
// publishes the count as a gauge. It never mutates bills: overdue bills stay
// PENDING and payable, the sweeper only keeps operators informed.
type OverdueSweeper struct {
	ctx      context.Context
	bills    store.BillRepository
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewOverdueSweeper constructs an [OverdueSweeper] that stops when ctx is
// cancelled.
func NewOverdueSweeper(ctx context.Context, bills store.BillRepository, interval time.Duration, m *metrics.Metrics, log *logger.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		ctx:      ctx,
		bills:    bills,
		interval: interval,
		metrics:  m,
		logger:   log,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately. One sweep runs right away so the gauge is populated before
// the first tick.
func (s *OverdueSweeper) Run() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.sweep()
		for {
			select {
			case <-s.ctx.Done():
				s.logger.Info().Msg("overdue sweeper stopped")
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *OverdueSweeper) sweep() {
	count, err := s.bills.CountOverduePending(s.ctx, time.Now())
	if err != nil {
		s.logger.Err(err).Msg("error counting overdue pending bills")
		return
	}

	s.metrics.OverduePendingBills.Set(float64(count))
	if count > 0 {
		s.logger.Warn().Int("count", count).Msg("overdue pending bills detected")
	}
}
