// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/auth"
)

// ResetTokenRepository implements auth.ResetTokenRepository using
// PostgreSQL.
type ResetTokenRepository struct {
	pool poolIface
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(pool poolIface) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

// Issue marks any outstanding unused tokens for the email as used and
// inserts the new token, in one transaction.
func (r *ResetTokenRepository) Issue(ctx context.Context, t *auth.ResetToken) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE email = $1 AND NOT used
	`, t.Email)
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "invalidate previous tokens").
			Wrap(err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO password_reset_tokens (id, email, token_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID.String(), t.Email, t.TokenHash, t.ExpiresAt, t.Used, t.CreatedAt)
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "insert reset token").
			Wrap(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "commit transaction").
			Wrap(err)
	}
	return nil
}

// Redeem consumes the token identified by tokenHash and installs the
// new password hash on the owning account, in one transaction. The
// token row is locked while both updates run so a concurrent redeem
// of the same token observes it as used.
func (r *ResetTokenRepository) Redeem(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", oops.Code("RESET_REDEEM_FAILED").
			With("operation", "begin transaction").
			Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var id, email string
	err = tx.QueryRow(ctx, `
		SELECT id, email
		FROM password_reset_tokens
		WHERE token_hash = $1 AND NOT used AND expires_at > $2
		FOR UPDATE
	`, tokenHash, now).Scan(&id, &email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", oops.Code("RESET_TOKEN_NOT_FOUND").
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return "", oops.Code("RESET_REDEEM_FAILED").
			With("operation", "select reset token").
			Wrap(err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE id = $1
	`, id)
	if err != nil {
		return "", oops.Code("RESET_REDEEM_FAILED").
			With("operation", "consume reset token").
			Wrap(err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET password_hash = $1
		WHERE LOWER(email) = LOWER($2)
	`, newPasswordHash, email)
	if err != nil {
		return "", oops.Code("RESET_REDEEM_FAILED").
			With("operation", "update password").
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		// Token outlived its account.
		return "", oops.Code("RESET_TOKEN_NOT_FOUND").
			Wrap(auth.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", oops.Code("RESET_REDEEM_FAILED").
			With("operation", "commit transaction").
			Wrap(err)
	}
	return email, nil
}

var _ auth.ResetTokenRepository = (*ResetTokenRepository)(nil)
