// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"errors"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// UserRef is the slice of a user the record services need for
// validating appointment and dossier parties.
type UserRef struct {
	ID   int64
	Role access.Role
}

// UserDirectory resolves user IDs to their roles.
type UserDirectory interface {
	// GetRef returns the user's reference. Returns an error wrapping
	// ErrNotFound if no user exists.
	GetRef(ctx context.Context, id int64) (UserRef, error)
}
