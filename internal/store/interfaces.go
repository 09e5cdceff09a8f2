package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/powergrid-apps/billkeeper/models"
)

// ConsumerRepository is the persistence contract for consumer records.
//
// Uniqueness of the formatted id and of both natural keys (national id,
// email) is enforced by the storage layer itself; Create and Update surface
// violations as the sentinel errors declared in this package so that callers
// can distinguish an allocation race from a genuine natural-key conflict.
type ConsumerRepository interface {
	// MaxSuffix returns the largest numeric suffix among stored consumer ids
	// that consist of prefix followed by digits only, or 0 when none match.
	// Ids sharing the prefix but carrying a malformed suffix are ignored.
	MaxSuffix(ctx context.Context, prefix string) (int, error)

	// Create persists a new consumer under its pre-assigned formatted id.
	Create(ctx context.Context, consumer models.Consumer) (models.Consumer, error)

	FindByID(ctx context.Context, id string) (models.Consumer, error)
	FindByEmail(ctx context.Context, email string) (models.Consumer, error)
	List(ctx context.Context) ([]models.Consumer, error)

	// Update applies the non-nil fields of patch to the stored record.
	Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error)
	Delete(ctx context.Context, id string) error

	// ExistsByNationalID and ExistsByEmail report whether another live record
	// holds the given natural key. A non-empty excludeID removes that record
	// from consideration so that a consumer never conflicts with itself.
	ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
}

// BillRepository is the persistence contract for bills.
type BillRepository interface {
	Create(ctx context.Context, bill models.Bill) (models.Bill, error)
	FindByID(ctx context.Context, billID int64) (models.Bill, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]models.Bill, error)

	// MarkPaid transitions a PENDING bill to PAID. The guard is a conditional
	// UPDATE on the status column, so the transition happens at most once
	// even under concurrent payment attempts.
	MarkPaid(ctx context.Context, billID int64, method string, paidAt time.Time) (models.Bill, error)

	// CountOverduePending counts PENDING bills whose due date lies before asOf.
	CountOverduePending(ctx context.Context, asOf time.Time) (int, error)
}
