package models

import "time"

// BillStatus is the payment state of a [Bill].
type BillStatus string

const (
	// BillStatusPending marks a generated bill that has not been paid yet.
	BillStatusPending BillStatus = "PENDING"

	// BillStatusPaid marks a settled bill. The transition PENDING → PAID
	// happens exactly once; paying an already paid bill fails.
	BillStatusPaid BillStatus = "PAID"
)

// Bill is a single billing period charge owned by one consumer.
type Bill struct {
	// BillID is the server-assigned numeric identifier of the bill.
	BillID int64 `json:"bill_id"`

	// ConsumerID references the owning [Consumer] by its formatted ID.
	ConsumerID string `json:"consumer_id"`

	// UnitsConsumed is the metered consumption for the billing period, in kWh.
	UnitsConsumed float64 `json:"units_consumed"`

	// Amount is the charged total: units multiplied by the configured
	// per-unit tariff rate.
	Amount float64 `json:"amount"`

	// DueDate is the payment deadline.
	DueDate time.Time `json:"due_date"`

	// Status is the current payment state of the bill.
	Status BillStatus `json:"status"`

	// PaymentMethod records how the bill was settled (e.g. "CARD", "CASH").
	// Empty while the bill is pending.
	PaymentMethod string `json:"payment_method,omitempty"`

	// CreatedAt is the timestamp when the bill was generated.
	CreatedAt time.Time `json:"created_at"`

	// PaidAt is the settlement timestamp; nil while the bill is pending.
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Bill model.
func (b Bill) TableName() string {
	return "bills"
}

// Overdue reports whether the bill is still pending past its due date.
func (b Bill) Overdue(now time.Time) bool {
	return b.Status == BillStatusPending && now.After(b.DueDate)
}
