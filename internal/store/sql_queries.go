package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/powergrid-apps/billkeeper/models"
)

const (
	createConsumer = `INSERT INTO consumers (id, national_id, email, name, phone, address, password_hash, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	findConsumerByID = `SELECT id, national_id, email, name, phone, address, password_hash, created_at
    FROM consumers
    WHERE id = $1 AND deleted_at IS NULL;`

	findConsumerByEmail = `SELECT id, national_id, email, name, phone, address, password_hash, created_at
    FROM consumers
    WHERE email = $1 AND deleted_at IS NULL;`

	listConsumers = `SELECT id, national_id, email, name, phone, address, password_hash, created_at
    FROM consumers
    WHERE deleted_at IS NULL
    ORDER BY id;`

	// deleteConsumer soft-deletes so that the id suffix stays burned forever;
	// MaxSuffix deliberately scans deleted rows too.
	deleteConsumer = `UPDATE consumers SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL;`

	// selectConsumerIDs feeds MaxSuffix. It does NOT filter deleted rows, so
	// an id released by deletion is never handed out again. The suffix is
	// parsed and validated in Go so that ids with a malformed (non-numeric)
	// tail are skipped instead of failing the query.
	selectConsumerIDs = `SELECT id FROM consumers WHERE id LIKE $1;`

	createBill = `INSERT INTO bills (consumer_id, units_consumed, amount, due_date, status, created_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING bill_id;`

	findBillByID = `SELECT bill_id, consumer_id, units_consumed, amount, due_date, status, payment_method, created_at, paid_at
    FROM bills
    WHERE bill_id = $1;`

	listBillsByConsumer = `SELECT bill_id, consumer_id, units_consumed, amount, due_date, status, payment_method, created_at, paid_at
    FROM bills
    WHERE consumer_id = $1
    ORDER BY bill_id;`

	// markBillPaid is conditional on the current status, which makes the
	// PENDING -> PAID transition single-shot under concurrent payments.
	markBillPaid = `UPDATE bills
    SET status = $1, payment_method = $2, paid_at = $3
    WHERE bill_id = $4 AND status = $5;`

	countOverduePendingBills = `SELECT COUNT(*) FROM bills WHERE status = $1 AND due_date < $2;`
)

// buildUpdateConsumerQuery builds an UPDATE statement covering exactly the
// non-nil fields of patch. Returns ErrBuildingSQLQuery when the patch is
// empty, since an UPDATE with no SET clause is invalid SQL.
func buildUpdateConsumerQuery(id string, patch models.ConsumerPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, fmt.Errorf("%w: empty consumer patch", ErrBuildingSQLQuery)
	}

	builder := sq.Update("consumers").PlaceholderFormat(sq.Dollar)

	if patch.NationalID != nil {
		builder = builder.Set("national_id", *patch.NationalID)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", *patch.Phone)
	}
	if patch.Address != nil {
		builder = builder.Set("address", *patch.Address)
	}

	query, args, err := builder.Where(sq.Eq{"id": id, "deleted_at": nil}).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildExistsByColumnQuery builds an EXISTS probe for a single unique column,
// optionally excluding one record by id so that a consumer is never compared
// against itself during updates.
func buildExistsByColumnQuery(column, value, excludeID string) (string, []any, error) {
	builder := sq.Select("1").
		From("consumers").
		Where(sq.Eq{column: value, "deleted_at": nil}).
		PlaceholderFormat(sq.Dollar)

	if excludeID != "" {
		builder = builder.Where(sq.NotEq{"id": excludeID})
	}

	inner, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return "SELECT EXISTS(" + inner + ")", args, nil
}
