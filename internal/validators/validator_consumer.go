package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/powergrid-apps/billkeeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	FieldNationalID = "national_id"
	FieldEmail      = "email"
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldPassword   = "password"
)

// ConsumerValidator validates consumer registration candidates and partial
// update patches.
type ConsumerValidator struct {
}

// NewConsumerValidator constructs a [Validator] for consumer input.
func NewConsumerValidator() Validator {
	return &ConsumerValidator{}
}

// Validate dispatches on the supplied value. Supported types are
// [models.Consumer] and [models.ConsumerPatch], by value or pointer.
func (v *ConsumerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Consumer:
		return v.validateConsumer(ctx, value, fields...)
	case *models.Consumer:
		return v.validateConsumer(ctx, *value, fields...)

	case models.ConsumerPatch:
		return v.validatePatch(ctx, value, fields...)
	case *models.ConsumerPatch:
		return v.validatePatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ConsumerValidator) validateConsumer(_ context.Context, consumer models.Consumer, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNationalID, FieldEmail, FieldName, FieldPhone, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldNationalID:
			if consumer.NationalID == "" {
				return ErrEmptyNationalID
			}
		case FieldEmail:
			if consumer.Email == "" {
				return ErrEmptyEmail
			}
			if !isValidEmail(consumer.Email) {
				return ErrInvalidEmail
			}
		case FieldName:
			if consumer.Name == "" {
				return ErrEmptyName
			}
		case FieldPhone:
			// phone is optional, validated only when supplied
			if consumer.Phone != "" && !isValidPhone(consumer.Phone) {
				return ErrInvalidPhone
			}
		case FieldPassword:
			if consumer.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch validates only the fields present in the patch. An empty
// patch is rejected outright since it would update nothing.
func (v *ConsumerValidator) validatePatch(_ context.Context, patch models.ConsumerPatch, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	if patch.NationalID != nil && *patch.NationalID == "" {
		return ErrEmptyNationalID
	}
	if patch.Email != nil {
		if *patch.Email == "" {
			return ErrEmptyEmail
		}
		if !isValidEmail(*patch.Email) {
			return ErrInvalidEmail
		}
	}
	if patch.Name != nil && *patch.Name == "" {
		return ErrEmptyName
	}
	if patch.Phone != nil && *patch.Phone != "" && !isValidPhone(*patch.Phone) {
		return ErrInvalidPhone
	}

	return nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// isValidPhone accepts digits plus the usual separators. The format is
// deliberately loose; numbers are stored as given, not normalised.
func isValidPhone(phone string) bool {
	digits := 0
	for _, c := range phone {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' || c == '-' || c == ' ' || c == '(' || c == ')':
		default:
			return false
		}
	}

	return digits >= 3 && digits <= 15 && !strings.HasSuffix(phone, "+")
}
