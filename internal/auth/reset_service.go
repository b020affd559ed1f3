// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/samber/oops"
)

// PasswordResetService runs the forgot-password flow: issue a
// single-use token, mail a reset link, and later redeem the token for
// a new password.
type PasswordResetService struct {
	users    UserRepository
	resets   ResetTokenRepository
	hasher   PasswordHasher
	notifier Notifier
	baseURL  string
	logger   *slog.Logger
}

// NewPasswordResetService creates a PasswordResetService. baseURL is
// the public origin of the frontend that hosts the reset form.
func NewPasswordResetService(users UserRepository, resets ResetTokenRepository, hasher PasswordHasher, notifier Notifier, baseURL string, logger *slog.Logger) (*PasswordResetService, error) {
	if users == nil {
		return nil, errors.New("user repository must not be nil")
	}
	if resets == nil {
		return nil, errors.New("reset token repository must not be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher must not be nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier must not be nil")
	}
	if baseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PasswordResetService{
		users:    users,
		resets:   resets,
		hasher:   hasher,
		notifier: notifier,
		baseURL:  baseURL,
		logger:   logger,
	}, nil
}

// ResetLink builds the URL embedded in the reset email.
func ResetLink(baseURL, token string) string {
	return strings.TrimSuffix(baseURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

// Request starts a password reset for the email. Unknown emails
// succeed silently so the endpoint cannot be used to enumerate
// accounts. Issuing a new token invalidates any outstanding unused
// tokens for the same email.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return oops.
			Code("RESET_REQUEST_FAILED").
			Wrapf(err, "looking up user")
	}

	rec, token, err := NewResetToken(user.Email)
	if err != nil {
		return err
	}
	if err := s.resets.Issue(ctx, rec); err != nil {
		return oops.
			Code("RESET_REQUEST_FAILED").
			Wrapf(err, "storing reset token")
	}

	link := ResetLink(s.baseURL, token)
	if err := s.notifier.SendPasswordResetEmail(ctx, user.Email, link); err != nil {
		return oops.
			Code("RESET_EMAIL_FAILED").
			Wrapf(err, "sending reset email")
	}

	s.logger.InfoContext(ctx, "password reset token issued", "user_id", user.ID)
	return nil
}

// ResetPassword redeems a reset token and installs the new password.
// The token is consumed and the password replaced in one atomic step;
// an unknown, used, or expired token changes nothing and yields a
// single indistinguishable error.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return oops.
			Code("RESET_TOKEN_INVALID").
			Errorf("invalid or expired token")
	}
	if len(newPassword) < MinPasswordLength {
		return oops.
			Code("AUTH_VALIDATION").
			Errorf("password must be at least %d characters", MinPasswordLength)
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	email, err := s.resets.Redeem(ctx, HashResetToken(token), newHash, time.Now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.
				Code("RESET_TOKEN_INVALID").
				Errorf("invalid or expired token")
		}
		return oops.
			Code("RESET_FAILED").
			Wrapf(err, "redeeming reset token")
	}

	s.logger.InfoContext(ctx, "password reset completed", "email_domain", emailDomain(email))
	return nil
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
