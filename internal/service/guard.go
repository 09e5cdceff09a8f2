package service

import (
	"context"
	"fmt"

	"github.com/powergrid-apps/billkeeper/internal/store"
)

// uniquenessGuard pre-flights natural-key uniqueness before a write reaches
// the store. The store's unique indexes remain the source of truth: the
// guard exists to reject obvious conflicts early with a precise field name,
// while races that slip past it surface as constraint violations on save and
// are mapped to the same [ConflictError].
type uniquenessGuard struct {
	consumers store.ConsumerRepository
}

// naturalKey is one guarded field: its reported name and the store probe
// that checks it.
type naturalKey struct {
	field  string
	exists func(ctx context.Context, value, excludeID string) (bool, error)
	value  string
}

// check evaluates the given natural keys in declaration order and returns a
// *ConflictError naming the first field already held by another record.
// Keys with an empty value are skipped (relevant for partial updates).
//
// A non-empty excludeID exempts that record from the probes so a consumer is
// never in conflict with itself.
func (g *uniquenessGuard) check(ctx context.Context, keys []naturalKey, excludeID string) error {
	for _, key := range keys {
		if key.value == "" {
			continue
		}

		exists, err := key.exists(ctx, key.value, excludeID)
		if err != nil {
			return fmt.Errorf("error probing unique field %q: %w", key.field, err)
		}
		if exists {
			return &ConflictError{Field: key.field}
		}
	}

	return nil
}

// checkCandidate guards a full registration candidate: both natural keys are
// required and evaluated in declaration order (national id, then email).
func (g *uniquenessGuard) checkCandidate(ctx context.Context, nationalID, email, excludeID string) error {
	return g.check(ctx, []naturalKey{
		{field: FieldNationalID, exists: g.consumers.ExistsByNationalID, value: nationalID},
		{field: FieldEmail, exists: g.consumers.ExistsByEmail, value: email},
	}, excludeID)
}
