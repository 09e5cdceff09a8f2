package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/models"
)

// billRepository is the SQL-backed implementation of [BillRepository].
type billRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBillRepository constructs a [BillRepository] backed by the provided
// database connection and logger.
func NewBillRepository(db *DB, logger *logger.Logger) BillRepository {
	logger.Debug().Msg("creating bill repository")
	return &billRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a freshly generated bill and returns it with the
// server-assigned BillID.
//
// Error handling:
//   - foreign key violation (unknown consumer) → [ErrConsumerNotFound].
//   - retryable driver errors → wrapped [ErrStoreUnavailable].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *billRepository) Create(ctx context.Context, bill models.Bill) (models.Bill, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createBill,
		bill.ConsumerID, bill.UnitsConsumed, bill.Amount, bill.DueDate, bill.Status, bill.CreatedAt)

	if err := row.Scan(&bill.BillID); err != nil {
		log.Err(err).Str("func", "*billRepository.Create").Str("consumer_id", bill.ConsumerID).Msg("error creating bill")
		return models.Bill{}, r.mapError(err)
	}

	return bill, nil
}

// FindByID retrieves a bill by its numeric id.
// Returns [ErrBillNotFound] when no row matches.
func (r *billRepository) FindByID(ctx context.Context, billID int64) (models.Bill, error) {
	log := logger.FromContext(ctx)

	var bill models.Bill
	var method sql.NullString
	var paidAt sql.NullTime

	row := r.db.QueryRowContext(ctx, findBillByID, billID)
	if err := row.Scan(&bill.BillID, &bill.ConsumerID, &bill.UnitsConsumed, &bill.Amount,
		&bill.DueDate, &bill.Status, &method, &bill.CreatedAt, &paidAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bill{}, ErrBillNotFound
		}
		log.Err(err).Str("func", "*billRepository.FindByID").Int64("bill_id", billID).Msg("error: scanning error")
		return models.Bill{}, r.mapError(err)
	}

	bill.PaymentMethod = method.String
	if paidAt.Valid {
		bill.PaidAt = &paidAt.Time
	}

	return bill, nil
}

// ListByConsumer returns all bills owned by the given consumer, oldest first.
func (r *billRepository) ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listBillsByConsumer, consumerID)
	if err != nil {
		log.Err(err).Str("func", "*billRepository.ListByConsumer").Str("consumer_id", consumerID).Msg("error querying bills")
		return nil, r.mapError(err)
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		var bill models.Bill
		var method sql.NullString
		var paidAt sql.NullTime

		if err := rows.Scan(&bill.BillID, &bill.ConsumerID, &bill.UnitsConsumed, &bill.Amount,
			&bill.DueDate, &bill.Status, &method, &bill.CreatedAt, &paidAt); err != nil {
			log.Err(err).Str("func", "*billRepository.ListByConsumer").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		bill.PaymentMethod = method.String
		if paidAt.Valid {
			bill.PaidAt = &paidAt.Time
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*billRepository.ListByConsumer").Msg("error iterating bills")
		return nil, r.mapError(err)
	}

	return bills, nil
}

// MarkPaid transitions a bill from PENDING to PAID.
//
// The UPDATE is conditional on the current status, so under concurrent
// payment attempts at most one succeeds. When no row is affected the bill is
// re-read to distinguish [ErrBillNotFound] from [ErrBillAlreadyPaid].
func (r *billRepository) MarkPaid(ctx context.Context, billID int64, method string, paidAt time.Time) (models.Bill, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markBillPaid,
		models.BillStatusPaid, method, paidAt, billID, models.BillStatusPending)
	if err != nil {
		log.Err(err).Str("func", "*billRepository.MarkPaid").Int64("bill_id", billID).Msg("error marking bill paid")
		return models.Bill{}, r.mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Bill{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		bill, findErr := r.FindByID(ctx, billID)
		if findErr != nil {
			return models.Bill{}, findErr
		}
		if bill.Status == models.BillStatusPaid {
			return models.Bill{}, ErrBillAlreadyPaid
		}
		return models.Bill{}, fmt.Errorf("%w: bill %d not transitioned", ErrExecutingStatement, billID)
	}

	return r.FindByID(ctx, billID)
}

// CountOverduePending counts pending bills whose due date lies before asOf.
// Used by the overdue sweeper worker.
func (r *billRepository) CountOverduePending(ctx context.Context, asOf time.Time) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, countOverduePendingBills, models.BillStatusPending, asOf)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*billRepository.CountOverduePending").Msg("error counting overdue bills")
		return 0, r.mapError(err)
	}

	return count, nil
}

func (r *billRepository) mapError(err error) error {
	if postgresError(err) == pgerrcode.ForeignKeyViolation {
		return ErrConsumerNotFound
	}

	if r.db.errorClassificator.Classify(err) == Retryable ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}
