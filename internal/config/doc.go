// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

// Package config loads and merges the billkeeper application configuration
// from environment variables, command-line flags, an optional JSON file, and
// built-in defaults.
//
// The main entry point is [GetStructuredConfig], which applies the sources in
// priority order (environment first, defaults last), merges them with mergo,
// and validates the result before returning it.
package config
