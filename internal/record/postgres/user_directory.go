// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
	"github.com/wassim-coder/medical-recording/internal/record"
)

// UserDirectory implements record.UserDirectory against the users
// table.
type UserDirectory struct {
	pool poolIface
}

// NewUserDirectory creates a new UserDirectory.
func NewUserDirectory(pool poolIface) *UserDirectory {
	return &UserDirectory{pool: pool}
}

// GetRef resolves a user ID to its role.
func (r *UserDirectory) GetRef(ctx context.Context, id int64) (record.UserRef, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return record.UserRef{}, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	if err != nil {
		return record.UserRef{}, oops.Code("USER_REF_FAILED").
			With("operation", "resolve user role").
			With("id", id).
			Wrap(err)
	}
	return record.UserRef{ID: id, Role: access.Role(role)}, nil
}

var _ record.UserDirectory = (*UserDirectory)(nil)
