package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/models"
)

// consumerRepository is the SQL-backed implementation of [ConsumerRepository].
// It handles consumer creation, lookup, update, and the max-suffix query that
// feeds identifier allocation, all against the "consumers" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type consumerRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConsumerRepository constructs a [ConsumerRepository] backed by the
// provided database connection and logger.
func NewConsumerRepository(db *DB, logger *logger.Logger) ConsumerRepository {
	logger.Debug().Msg("creating consumer repository")
	return &consumerRepository{
		db:     db,
		logger: logger,
	}
}

// MaxSuffix returns the maximum numeric suffix among stored ids of the form
// prefix followed by decimal digits, or 0 when no such id exists.
//
// The digit parsing happens here rather than in SQL so that ids sharing the
// prefix but carrying a malformed suffix are skipped silently instead of
// failing the whole query.
func (r *consumerRepository) MaxSuffix(ctx context.Context, prefix string) (int, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, selectConsumerIDs, prefix+"%")
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.MaxSuffix").Msg("error querying consumer ids")
		return 0, r.mapReadError(err)
	}
	defer rows.Close()

	maxSuffix := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Err(err).Str("func", "*consumerRepository.MaxSuffix").Msg("error: scanning error")
			return 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if suffix, ok := parseSuffix(id, prefix); ok && suffix > maxSuffix {
			maxSuffix = suffix
		}
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*consumerRepository.MaxSuffix").Msg("error iterating consumer ids")
		return 0, r.mapReadError(err)
	}

	return maxSuffix, nil
}

// Create persists a new consumer record under its pre-assigned id.
//
// Error handling:
//   - unique violation on the primary key → [ErrConsumerIDTaken]
//     (allocation race, retryable by the registrar).
//   - unique violation on national_id / email → [ErrNationalIDTaken] /
//     [ErrEmailTaken].
//   - retryable driver errors (connection class) → wrapped [ErrStoreUnavailable].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *consumerRepository) Create(ctx context.Context, consumer models.Consumer) (models.Consumer, error) {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createConsumer,
		consumer.ID, consumer.NationalID, consumer.Email, consumer.Name,
		consumer.Phone, consumer.Address, consumer.PasswordHash, consumer.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.Create").Str("id", consumer.ID).Msg("error creating consumer")
		return models.Consumer{}, r.mapWriteError(err)
	}

	return consumer, nil
}

// FindByID retrieves a consumer record by its formatted id.
// Returns [ErrConsumerNotFound] when no row matches.
func (r *consumerRepository) FindByID(ctx context.Context, id string) (models.Consumer, error) {
	return r.findOne(ctx, findConsumerByID, id)
}

// FindByEmail retrieves a consumer record by its email natural key.
// Returns [ErrConsumerNotFound] when no row matches.
func (r *consumerRepository) FindByEmail(ctx context.Context, email string) (models.Consumer, error) {
	return r.findOne(ctx, findConsumerByEmail, email)
}

func (r *consumerRepository) findOne(ctx context.Context, query, arg string) (models.Consumer, error) {
	log := logger.FromContext(ctx)

	var consumer models.Consumer
	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&consumer.ID, &consumer.NationalID, &consumer.Email, &consumer.Name,
		&consumer.Phone, &consumer.Address, &consumer.PasswordHash, &consumer.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Consumer{}, ErrConsumerNotFound
		}
		log.Err(err).Str("func", "*consumerRepository.findOne").Msg("error: scanning error")
		return models.Consumer{}, r.mapReadError(err)
	}

	return consumer, nil
}

// List returns all consumers ordered by id. Listing order is stable because
// ids are zero-padded to a fixed width within a prefix.
func (r *consumerRepository) List(ctx context.Context) ([]models.Consumer, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listConsumers)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.List").Msg("error querying consumers")
		return nil, r.mapReadError(err)
	}
	defer rows.Close()

	consumers := make([]models.Consumer, 0)
	for rows.Next() {
		var consumer models.Consumer
		if err := rows.Scan(&consumer.ID, &consumer.NationalID, &consumer.Email, &consumer.Name,
			&consumer.Phone, &consumer.Address, &consumer.PasswordHash, &consumer.CreatedAt); err != nil {
			log.Err(err).Str("func", "*consumerRepository.List").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		consumers = append(consumers, consumer)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*consumerRepository.List").Msg("error iterating consumers")
		return nil, r.mapReadError(err)
	}

	return consumers, nil
}

// Update applies the non-nil fields of patch to the stored record and returns
// the fresh state.
//
// Error handling mirrors [consumerRepository.Create] for unique violations;
// a missing record yields [ErrConsumerNotFound].
func (r *consumerRepository) Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateConsumerQuery(id, patch)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.Update").Msg("error building update query")
		return models.Consumer{}, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.Update").Str("id", id).Msg("error updating consumer")
		return models.Consumer{}, r.mapWriteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Consumer{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Consumer{}, ErrConsumerNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete soft-deletes a consumer record. The row stays behind with deleted_at
// set so that the id's numeric suffix is never freed for reuse: allocation
// derives from the maximum suffix across all rows, deleted ones included.
// Returns [ErrConsumerNotFound] when no live row matches.
func (r *consumerRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteConsumer, time.Now(), id)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.Delete").Str("id", id).Msg("error deleting consumer")
		return r.mapWriteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrConsumerNotFound
	}

	return nil
}

// ExistsByNationalID reports whether a consumer other than excludeID holds
// the given national id.
func (r *consumerRepository) ExistsByNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	return r.existsByColumn(ctx, "national_id", nationalID, excludeID)
}

// ExistsByEmail reports whether a consumer other than excludeID holds the
// given email.
func (r *consumerRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return r.existsByColumn(ctx, "email", email, excludeID)
}

func (r *consumerRepository) existsByColumn(ctx context.Context, column, value, excludeID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExistsByColumnQuery(column, value, excludeID)
	if err != nil {
		log.Err(err).Str("func", "*consumerRepository.existsByColumn").Msg("error building exists query")
		return false, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*consumerRepository.existsByColumn").Str("column", column).Msg("error probing natural key")
		return false, r.mapReadError(err)
	}

	return exists, nil
}

// mapWriteError translates driver errors from INSERT/UPDATE/DELETE into the
// package's sentinel errors.
func (r *consumerRepository) mapWriteError(err error) error {
	switch r.db.errorClassificator.UniqueColumn(err) {
	case "id":
		return ErrConsumerIDTaken
	case "national_id":
		return ErrNationalIDTaken
	case "email":
		return ErrEmailTaken
	}

	return r.mapReadError(err)
}

// mapReadError translates infrastructure failures into [ErrStoreUnavailable]
// and wraps everything else as an unexpected DB error.
func (r *consumerRepository) mapReadError(err error) error {
	if r.db.errorClassificator.Classify(err) == Retryable ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

// parseSuffix extracts the numeric suffix of id after prefix. The second
// return value is false when the id does not start with prefix, the tail
// contains anything but decimal digits, or the value would overflow int;
// such ids are treated as malformed and skipped.
func parseSuffix(id, prefix string) (int, bool) {
	if len(id) <= len(prefix) || !strings.HasPrefix(id, prefix) {
		return 0, false
	}

	suffix := 0
	for _, c := range id[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		if suffix > (math.MaxInt-int(c-'0'))/10 {
			return 0, false
		}
		suffix = suffix*10 + int(c-'0')
	}

	return suffix, true
}
