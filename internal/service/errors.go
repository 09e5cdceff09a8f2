package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values that cannot be processed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately not
	// distinguished for the caller.
	ErrInvalidCredentials = errors.New("invalid email/password")

	// ErrCapacityExceeded is returned when the next numeric suffix would no
	// longer fit the configured zero-padded width. The id space for the
	// prefix is exhausted; this is operator-visible, not user-correctable.
	ErrCapacityExceeded = errors.New("identifier capacity exceeded")

	// ErrAllocationContention is returned when a registration loses the
	// id-allocation race more times than the retry budget allows. The whole
	// request is safe to retry.
	ErrAllocationContention = errors.New("identifier allocation contention")

	// ErrTokenIsExpiredOrInvalid is the normalised failure for every JWT
	// validation problem (expired, wrong issuer, malformed).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// Unique natural-key field names as reported in [ConflictError.Field] and in
// HTTP 409 bodies. They match the JSON attribute names of [models.Consumer].
const (
	FieldNationalID = "national_id"
	FieldEmail      = "email"
)

// ConflictError reports that a proposed record collides with an existing one
// on a unique natural-key field. Field evaluation order is deterministic
// (national id before email), so repeated attempts produce the same field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on unique field %q", e.Field)
}

// AsConflict unwraps err as a *ConflictError, returning nil when err is not
// a natural-key conflict.
func AsConflict(err error) *ConflictError {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict
	}

	return nil
}
