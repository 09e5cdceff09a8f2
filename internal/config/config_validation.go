// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.IDPrefix == "" || cfg.App.IDWidth < 1 || cfg.App.IDWidth > 9 {
		return ErrInvalidIDConfigs
	}

	if cfg.App.AllocRetries < 1 {
		return ErrInvalidIDConfigs
	}

	if cfg.App.RatePerUnit <= 0 {
		return ErrInvalidBillingConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAuthConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
