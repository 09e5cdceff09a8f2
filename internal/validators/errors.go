package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyNationalID = errors.New("national id is required")
	ErrEmptyEmail      = errors.New("email is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrEmptyName       = errors.New("name is required")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrEmptyPatch      = errors.New("at least one field must be provided for update")
)
