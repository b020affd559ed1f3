// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

const (
	// resetTokenBytes is the entropy of a reset token before hex
	// encoding.
	resetTokenBytes = 32

	// ResetTokenTTL is how long a reset token stays redeemable.
	ResetTokenTTL = time.Hour
)

// ResetToken is a single-use, time-boxed password reset credential.
// Only the SHA-256 hash of the token is stored; the plaintext exists
// solely in the email sent to the account holder.
type ResetToken struct {
	ID        ulid.ULID
	Email     string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// NewResetToken mints a reset token record for the email and returns
// it together with the plaintext token to embed in the reset link.
func NewResetToken(email string) (*ResetToken, string, error) {
	token, hash, err := GenerateResetToken()
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	return &ResetToken{
		ID:        ulid.Make(),
		Email:     email,
		TokenHash: hash,
		ExpiresAt: now.Add(ResetTokenTTL),
		CreatedAt: now,
	}, token, nil
}

// IsExpired reports whether the token's redemption window has closed.
func (t *ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// GenerateResetToken produces a random token and its storage hash.
func GenerateResetToken() (token, hash string, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", oops.
			Code("RESET_TOKEN_FAILED").
			Wrapf(err, "generating reset token")
	}
	token = hex.EncodeToString(buf)
	return token, HashResetToken(token), nil
}

// HashResetToken derives the storage hash of a plaintext reset token.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ResetTokenRepository provides access to reset token storage.
type ResetTokenRepository interface {
	// Issue invalidates any outstanding unused tokens for the record's
	// email and persists the new one, atomically. At most one
	// redeemable token exists per email at a time.
	Issue(ctx context.Context, t *ResetToken) error

	// Redeem atomically marks the token identified by tokenHash as
	// used and replaces the owning account's password hash. It returns
	// the account email. A token that is unknown, already used, or
	// expired at now yields an error wrapping ErrNotFound, and nothing
	// is changed.
	Redeem(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) (string, error)
}

// Notifier delivers password reset links to account holders.
type Notifier interface {
	SendPasswordResetEmail(ctx context.Context, to, resetLink string) error
}
