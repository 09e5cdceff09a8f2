package models

import "time"

// Consumer represents a registered electricity consumer. It is the root
// entity of the billing domain: every bill belongs to exactly one consumer.
//
// The primary key is a formatted string identifier (for example "USER0042")
// assigned by the server at registration time. Clients never supply it.
type Consumer struct {
	// ID is the formatted consumer identifier: a fixed prefix followed by a
	// zero-padded numeric suffix. Immutable once assigned and never reused
	// after deletion.
	ID string `json:"id"`

	// NationalID is the consumer's government identity number.
	// Unique across all live consumers.
	NationalID string `json:"national_id"`

	// Email is the consumer's contact address, also used as the login name.
	// Unique across all live consumers.
	Email string `json:"email"`

	// Name is the display name of the consumer. No uniqueness constraint.
	Name string `json:"name"`

	// Phone is an optional contact number. No uniqueness constraint.
	Phone string `json:"phone"`

	// Address is the supply address billed by this account.
	Address string `json:"address"`

	// Password carries the plain-text password on inbound registration
	// requests only. It is hashed before persistence and never stored
	// or echoed back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the consumer's password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Consumer model.
func (c Consumer) TableName() string {
	return "consumers"
}

// ConsumerPatch enumerates the mutable fields of a [Consumer] for partial
// updates. A nil field means "leave unchanged"; a non-nil field replaces the
// stored value. The generated ID is deliberately absent: it can never change.
//
// NationalID and Email are re-validated for uniqueness on update, excluding
// the record's own current values.
type ConsumerPatch struct {
	NationalID *string `json:"national_id,omitempty"`
	Email      *string `json:"email,omitempty"`
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
}

// IsEmpty reports whether the patch carries no field changes at all.
func (p ConsumerPatch) IsEmpty() bool {
	return p.NationalID == nil && p.Email == nil && p.Name == nil &&
		p.Phone == nil && p.Address == nil
}
