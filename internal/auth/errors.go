// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registration targets an email
// that already has an account. Unlike login failures, duplicate email
// is disclosable to the caller.
var ErrDuplicateEmail = errors.New("email already registered")
