// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The billkeeper Authors

package server

import "errors"

var (
	errNoAddressProvided = errors.New("no http address provided")
)
