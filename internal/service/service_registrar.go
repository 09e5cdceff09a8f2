package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/powergrid-apps/billkeeper/internal/config"
	"github.com/powergrid-apps/billkeeper/internal/logger"
	"github.com/powergrid-apps/billkeeper/internal/metrics"
	"github.com/powergrid-apps/billkeeper/internal/store"
	"github.com/powergrid-apps/billkeeper/internal/validators"
	"github.com/powergrid-apps/billkeeper/models"
)

// registrarService is the concrete implementation of [RegistrarService].
//
// Registration is the only place in the application where identifiers are
// allocated, and the only place that retries: two concurrent registrations
// can read the same maximum suffix and attempt the same id, in which case
// the store rejects the loser on its primary-key constraint and the
// registrar re-reads the suffix and tries again, up to allocRetries times.
// Callers above it never retry allocation themselves.
type registrarService struct {
	consumers store.ConsumerRepository
	allocator *idAllocator
	guard     *uniquenessGuard
	validator validators.Validator

	idPrefix     string
	idWidth      int
	allocRetries int

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewRegistrarService constructs a [RegistrarService] wired to the given
// consumer repository and populated with allocation parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewRegistrarService(consumers store.ConsumerRepository, cfg config.App, m *metrics.Metrics, logger *logger.Logger) RegistrarService {
	return &registrarService{
		consumers:    consumers,
		allocator:    &idAllocator{consumers: consumers},
		guard:        &uniquenessGuard{consumers: consumers},
		validator:    validators.NewConsumerValidator(),
		idPrefix:     cfg.IDPrefix,
		idWidth:      cfg.IDWidth,
		allocRetries: cfg.AllocRetries,
		metrics:      m,
		logger:       logger,
	}
}

// Register creates a new consumer with a freshly allocated identifier.
//
// The flow is guard → allocate → insert. The guard rejects natural-key
// conflicts before any id is allocated, so a rejected attempt leaves the id
// sequence untouched. A primary-key collision on insert means a concurrent
// registration won the same id; the allocation is re-run from the store's
// new maximum. Natural-key violations on insert (a conflict that appeared
// after the guard passed) are returned as [ConflictError] without retrying.
//
// Returns the persisted consumer or:
//   - [ErrInvalidDataProvided] if a required field is empty.
//   - [ConflictError] naming the conflicting natural-key field.
//   - [ErrCapacityExceeded] if the id space for the prefix is exhausted.
//   - [ErrAllocationContention] if the retry budget is spent.
func (s *registrarService) Register(ctx context.Context, candidate models.Consumer) (models.Consumer, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, candidate); err != nil {
		log.Error().Err(err).Str("email", candidate.Email).Msg("invalid consumer data provided")
		return models.Consumer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(candidate.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Consumer{}, fmt.Errorf("error hashing password: %w", err)
	}
	candidate.Password = ""
	candidate.PasswordHash = string(passwordHash)

	if err := s.guard.checkCandidate(ctx, candidate.NationalID, candidate.Email, ""); err != nil {
		if conflict := AsConflict(err); conflict != nil {
			s.metrics.RegistrationConflicts.Inc()
			log.Warn().Str("field", conflict.Field).Msg("registration rejected on natural-key conflict")
		}
		return models.Consumer{}, err
	}

	for attempt := 1; attempt <= s.allocRetries; attempt++ {
		id, err := s.allocator.NextID(ctx, s.idPrefix, s.idWidth)
		if err != nil {
			return models.Consumer{}, err
		}

		candidate.ID = id
		candidate.CreatedAt = time.Now().UTC()

		created, err := s.consumers.Create(ctx, candidate)
		switch {
		case err == nil:
			s.metrics.ConsumersRegistered.Inc()
			log.Debug().Str("id", created.ID).Int("attempt", attempt).Msg("consumer registered")
			return created, nil

		case errors.Is(err, store.ErrConsumerIDTaken):
			// lost the allocation race, re-read the max suffix and retry
			s.metrics.AllocationRetries.Inc()
			log.Warn().Str("id", id).Int("attempt", attempt).Msg("id allocation collision, retrying")

		case errors.Is(err, store.ErrNationalIDTaken):
			s.metrics.RegistrationConflicts.Inc()
			return models.Consumer{}, &ConflictError{Field: FieldNationalID}

		case errors.Is(err, store.ErrEmailTaken):
			s.metrics.RegistrationConflicts.Inc()
			return models.Consumer{}, &ConflictError{Field: FieldEmail}

		default:
			log.Err(err).Str("id", id).Msg("consumer creation ended with error")
			return models.Consumer{}, fmt.Errorf("consumer creation ended with error: %w", err)
		}
	}

	log.Error().Int("retries", s.allocRetries).Msg("id allocation retry budget spent")
	return models.Consumer{}, ErrAllocationContention
}

// Get retrieves a consumer by id.
func (s *registrarService) Get(ctx context.Context, id string) (models.Consumer, error) {
	if id == "" {
		return models.Consumer{}, ErrInvalidDataProvided
	}

	return s.consumers.FindByID(ctx, id)
}

// List returns all registered consumers ordered by id.
func (s *registrarService) List(ctx context.Context) ([]models.Consumer, error) {
	return s.consumers.List(ctx)
}

// Update applies a partial update to a consumer record.
//
// Natural keys present in the patch are re-validated for uniqueness
// excluding the record's own current values: setting a field to what it
// already holds never conflicts. On conflict nothing is mutated.
//
// Returns the updated consumer or [store.ErrConsumerNotFound],
// [ConflictError], or [ErrInvalidDataProvided] for an empty patch.
func (s *registrarService) Update(ctx context.Context, id string, patch models.ConsumerPatch) (models.Consumer, error) {
	log := logger.FromContext(ctx)

	if id == "" {
		return models.Consumer{}, ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, patch); err != nil {
		log.Error().Err(err).Str("id", id).Msg("invalid consumer patch provided")
		return models.Consumer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.consumers.FindByID(ctx, id); err != nil {
		return models.Consumer{}, err
	}

	var nationalID, email string
	if patch.NationalID != nil {
		nationalID = *patch.NationalID
	}
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.guard.checkCandidate(ctx, nationalID, email, id); err != nil {
		return models.Consumer{}, err
	}

	updated, err := s.consumers.Update(ctx, id, patch)
	if err != nil {
		// conflicts that raced past the guard surface as store sentinels
		switch {
		case errors.Is(err, store.ErrNationalIDTaken):
			return models.Consumer{}, &ConflictError{Field: FieldNationalID}
		case errors.Is(err, store.ErrEmailTaken):
			return models.Consumer{}, &ConflictError{Field: FieldEmail}
		}
		log.Err(err).Str("id", id).Msg("consumer update ended with error")
		return models.Consumer{}, err
	}

	return updated, nil
}

// Delete removes a consumer record. The freed numeric suffix is never
// reallocated: the allocator derives from the maximum suffix ever used.
func (s *registrarService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	return s.consumers.Delete(ctx, id)
}
