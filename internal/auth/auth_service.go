// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// dummyPasswordHash is a valid bcrypt hash used to equalize login
// timing when the email is unknown, so response latency does not
// reveal whether an account exists.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service handles registration and login.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	issuer *TokenIssuer
	logger *slog.Logger
}

// NewService creates an authentication service.
func NewService(users UserRepository, hasher PasswordHasher, issuer *TokenIssuer) (*Service, error) {
	return NewServiceWithLogger(users, hasher, issuer, slog.Default())
}

// NewServiceWithLogger creates an authentication service with a
// custom logger.
func NewServiceWithLogger(users UserRepository, hasher PasswordHasher, issuer *TokenIssuer, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, errors.New("user repository must not be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher must not be nil")
	}
	if issuer == nil {
		return nil, errors.New("token issuer must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, hasher: hasher, issuer: issuer, logger: logger}, nil
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth time.Time
	Gender      string
	Role        string
	BloodGroup  string
	Allergies   string
	Specialty   string
	Salary      float64
}

// Register creates an account and returns a signed access token
// together with the new user's public profile.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, Profile, error) {
	if len(in.Password) < MinPasswordLength {
		return "", Profile{}, oops.
			Code("AUTH_VALIDATION").
			Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", Profile{}, err
	}

	user, err := NewUser(NewUserInput{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		Role:         in.Role,
		BloodGroup:   in.BloodGroup,
		Allergies:    in.Allergies,
		Specialty:    in.Specialty,
		Salary:       in.Salary,
	})
	if err != nil {
		return "", Profile{}, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return "", Profile{}, oops.
				Code("AUTH_DUPLICATE_EMAIL").
				Errorf("email already registered")
		}
		return "", Profile{}, oops.
			Code("AUTH_REGISTER_FAILED").
			Wrapf(err, "creating user")
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", Profile{}, err
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role,
	)
	return token, user.Profile(), nil
}

// Login authenticates by email and password and returns a signed
// access token with the user's public profile. All failure modes
// return the same error so callers cannot probe which emails have
// accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, Profile, error) {
	user, err := s.users.GetByEmail(ctx, email)
	userExists := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", Profile{}, oops.
			Code("AUTH_LOGIN_FAILED").
			Wrapf(err, "looking up user")
	}

	// Verify against a dummy hash when the user is unknown so both
	// paths cost one bcrypt comparison.
	storedHash := dummyPasswordHash
	if userExists {
		storedHash = user.PasswordHash
	}

	match, err := s.hasher.Verify(password, storedHash)
	if err != nil {
		return "", Profile{}, oops.
			Code("AUTH_LOGIN_FAILED").
			Wrapf(err, "verifying password")
	}
	if !userExists || !match {
		return "", Profile{}, oops.
			Code("AUTH_INVALID_CREDENTIALS").
			Errorf("invalid email or password")
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", Profile{}, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID,
		"role", user.Role,
	)
	return token, user.Profile(), nil
}
