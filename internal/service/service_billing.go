package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/models"
)

// billingService implements [BillingService] on top of the bill and consumer
// repositories. Amounts are computed from a flat per-unit rate taken from the
// application config.
type billingService struct {
	bills       store.BillRepository
	consumers   store.ConsumerRepository
	ratePerUnit float64
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

// NewBillingService constructs a [BillingService].
func NewBillingService(bills store.BillRepository, consumers store.ConsumerRepository, cfg config.App, m *metrics.Metrics, logger *logger.Logger) BillingService {
	logger.Debug().Msg("creating billing service")
	return &billingService{
		bills:       bills,
		consumers:   consumers,
		ratePerUnit: cfg.RatePerUnit,
		metrics:     m,
		logger:      logger,
	}
}

// Generate creates a new PENDING bill for the given consumer. The amount is
// units * rate, rounded to two decimal places.
func (s *billingService) Generate(ctx context.Context, consumerID string, units float64, dueDate time.Time) (models.Bill, error) {
	log := logger.FromContext(ctx)

	if units <= 0 {
		return models.Bill{}, fmt.Errorf("%w: units consumed must be positive", ErrInvalidDataProvided)
	}
	if dueDate.IsZero() {
		return models.Bill{}, fmt.Errorf("%w: due date is required", ErrInvalidDataProvided)
	}

	if _, err := s.consumers.FindByID(ctx, consumerID); err != nil {
		log.Err(err).Str("consumer_id", consumerID).Msg("consumer lookup failed during bill generation")
		return models.Bill{}, err
	}

	bill := models.Bill{
		ConsumerID:    consumerID,
		UnitsConsumed: units,
		Amount:        roundMoney(units * s.ratePerUnit),
		DueDate:       dueDate,
		Status:        models.BillStatusPending,
		CreatedAt:     time.Now(),
	}

	created, err := s.bills.Create(ctx, bill)
	if err != nil {
		log.Err(err).Str("consumer_id", consumerID).Msg("error creating bill")
		return models.Bill{}, err
	}

	s.metrics.BillsGenerated.Inc()
	log.Info().Int64("bill_id", created.BillID).Str("consumer_id", consumerID).Msg("bill generated")

	return created, nil
}

// Get retrieves a single bill by its numeric id.
func (s *billingService) Get(ctx context.Context, billID int64) (models.Bill, error) {
	return s.bills.FindByID(ctx, billID)
}

// ListByConsumer returns all bills for the given consumer, verifying the
// consumer exists first so that an unknown id yields not-found rather than an
// empty list.
func (s *billingService) ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error) {
	if _, err := s.consumers.FindByID(ctx, consumerID); err != nil {
		return nil, err
	}

	return s.bills.ListByConsumer(ctx, consumerID)
}

// Pay transitions a bill from PENDING to PAID, recording the payment method
// and timestamp. Paying an already paid bill returns
// [store.ErrBillAlreadyPaid]; the transition happens at most once even under
// concurrent payment attempts.
func (s *billingService) Pay(ctx context.Context, billID int64, method string) (models.Bill, error) {
	log := logger.FromContext(ctx)

	if method == "" {
		return models.Bill{}, fmt.Errorf("%w: payment method is required", ErrInvalidDataProvided)
	}

	bill, err := s.bills.MarkPaid(ctx, billID, method, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrBillAlreadyPaid) {
			log.Warn().Int64("bill_id", billID).Msg("payment attempt on already paid bill")
		} else {
			log.Err(err).Int64("bill_id", billID).Msg("error marking bill paid")
		}
		return models.Bill{}, err
	}

	s.metrics.BillsPaid.Inc()
	log.Info().Int64("bill_id", billID).Str("payment_method", method).Msg("bill paid")

	return bill, nil
}

// roundMoney rounds to two decimal places, half away from zero.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
