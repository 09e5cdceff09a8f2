package service

import (
	"context"
	"fmt"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/store"
)

// idAllocator computes the next free formatted consumer identifier.
//
// It is stateless: every allocation derives from the store's authoritative
// current maximum suffix rather than an in-process counter, so multiple
// server instances cannot drift apart or double-allocate silently. The
// remaining read-max-then-insert race window is closed by the registrar,
// which retries on a primary-key collision reported by the store.
type idAllocator struct {
	consumers store.ConsumerRepository
}

// NextID returns prefix followed by the next unused numeric suffix,
// zero-padded to width digits.
//
// Returns [ErrCapacityExceeded] when the next suffix would need more digits
// than width allows (e.g. suffix 10000 with width 4). Allocation fails
// closed: a wider id is never produced.
func (a *idAllocator) NextID(ctx context.Context, prefix string, width int) (string, error) {
	log := logger.FromContext(ctx)

	maxSuffix, err := a.consumers.MaxSuffix(ctx, prefix)
	if err != nil {
		log.Err(err).Str("prefix", prefix).Msg("error reading max id suffix")
		return "", fmt.Errorf("error reading max id suffix: %w", err)
	}

	next := maxSuffix + 1
	if next >= pow10(width) {
		log.Error().Str("prefix", prefix).Int("width", width).Int("suffix", next).Msg("identifier capacity exceeded")
		return "", ErrCapacityExceeded
	}

	return fmt.Sprintf("%s%0*d", prefix, width, next), nil
}

// pow10 returns 10^n for small non-negative n. Width is validated to 1..9 by
// the configuration layer, so the result always fits an int.
func pow10(n int) int {
	result := 1
	for i := 0; i < n; i++ {
		result *= 10
	}

	return result
}
