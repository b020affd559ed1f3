// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// TokenTTL is the lifetime of an issued access token.
const TokenTTL = time.Hour

// Claims is the JWT payload issued on login and registration. The
// subject carries the user ID; role and email are duplicated into
// custom claims so middleware can resolve an identity without a
// database round trip.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim into a user ID.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, oops.
			Code("AUTH_INVALID_TOKEN").
			Wrapf(err, "parsing token subject")
	}
	return id, nil
}

// TokenIssuer signs and verifies access tokens with an HMAC-SHA256
// key. The key, issuer, and audience are injected from configuration
// and never change after construction.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenIssuer creates a TokenIssuer. The secret must not be empty.
func NewTokenIssuer(secret []byte, issuer, audience string) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	if issuer == "" {
		return nil, errors.New("token issuer must not be empty")
	}
	if audience == "" {
		return nil, errors.New("token audience must not be empty")
	}
	return &TokenIssuer{secret: secret, issuer: issuer, audience: audience}, nil
}

// Issue signs a one-hour token for the user.
func (ti *TokenIssuer) Issue(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  string(u.Role),
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", oops.
			Code("AUTH_TOKEN_FAILED").
			With("user_id", u.ID).
			Wrapf(err, "signing token")
	}
	return signed, nil
}

// Verify parses and validates a raw token string. Every failure mode,
// whether a bad signature, an expired token, a wrong issuer or
// audience, or garbage input, collapses to the same error so callers
// cannot distinguish them.
func (ti *TokenIssuer) Verify(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return ti.secret, nil
	},
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, oops.
			Code("AUTH_INVALID_TOKEN").
			Wrapf(err, "invalid or expired token")
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, oops.
			Code("AUTH_INVALID_TOKEN").
			Errorf("invalid or expired token")
	}
	return claims, nil
}
