package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrConsumerIDTaken is returned when an INSERT of a new consumer fails
	// because the generated identifier already exists. This happens when two
	// concurrent registrations read the same maximum suffix; the registrar
	// treats it as a retryable allocation collision.
	ErrConsumerIDTaken = errors.New("consumer id already exists")

	// ErrNationalIDTaken is returned when a write collides with another
	// consumer's national identity number.
	ErrNationalIDTaken = errors.New("national id already exists")

	// ErrEmailTaken is returned when a write collides with another consumer's
	// email address.
	ErrEmailTaken = errors.New("email already exists")

	// ErrConsumerNotFound is returned when an operation targets a consumer id
	// that does not exist in the database.
	ErrConsumerNotFound = errors.New("consumer was not found")

	// ErrBillNotFound is returned when an operation targets a bill id that
	// does not exist in the database.
	ErrBillNotFound = errors.New("bill was not found")

	// ErrBillAlreadyPaid is returned when a payment targets a bill that has
	// already transitioned to the PAID state. The transition happens exactly
	// once.
	ErrBillAlreadyPaid = errors.New("bill is already paid")

	// ErrStoreUnavailable is returned when the database cannot be reached or
	// an operation times out. The whole request is safe to retry.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
