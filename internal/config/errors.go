package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidIDConfigs indicates invalid identifier allocation settings
	// (empty prefix, suffix width outside 1..9, or a retry limit below 1).
	ErrInvalidIDConfigs = errors.New("invalid identifier allocation configuration")
	// ErrInvalidBillingConfigs indicates invalid billing settings
	// (for example, a non-positive tariff rate).
	ErrInvalidBillingConfigs = errors.New("invalid billing configuration")
	// ErrInvalidAuthConfigs indicates invalid authentication settings
	// (missing token sign key, issuer, or duration).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, an empty listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
