// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// MinPasswordLength is the minimum accepted password length for
// registration and password reset.
const MinPasswordLength = 6

const (
	accountCodeLength   = 6
	accountCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// User is a registered account. Role-specific fields are populated
// according to Role at registration time and zeroed for other roles.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Gender       string
	Role         access.Role

	// Patient fields.
	BloodGroup string
	Allergies  string
	Code       string

	// Doctor fields.
	Specialty string
	Salary    float64

	CreatedAt time.Time
}

// NewUserInput carries the raw registration payload. Password arrives
// already hashed; role strings are normalized here.
type NewUserInput struct {
	Name         string
	Email        string
	PasswordHash string
	DateOfBirth  time.Time
	Gender       string
	Role         string
	BloodGroup   string
	Allergies    string
	Specialty    string
	Salary       float64
}

// NewUser validates the input and builds a User with per-role
// defaults. An empty role defaults to patient. Fields belonging to
// other roles are discarded, so a doctor never carries a blood group
// and a patient never carries a salary.
func NewUser(in NewUserInput) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, oops.
			Code("AUTH_VALIDATION").
			Errorf("email must not be empty")
	}
	if in.PasswordHash == "" {
		return nil, oops.
			Code("AUTH_VALIDATION").
			Errorf("password hash must not be empty")
	}

	roleStr := in.Role
	if strings.TrimSpace(roleStr) == "" {
		roleStr = string(access.RolePatient)
	}
	role, err := access.NormalizeRole(roleStr)
	if err != nil {
		return nil, oops.
			Code("AUTH_VALIDATION").
			With("role", in.Role).
			Wrapf(err, "validating role")
	}

	u := &User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: in.PasswordHash,
		DateOfBirth:  in.DateOfBirth,
		Gender:       strings.TrimSpace(in.Gender),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	switch role {
	case access.RoleDoctor:
		u.Specialty = strings.TrimSpace(in.Specialty)
		u.Salary = in.Salary
	case access.RolePatient:
		u.BloodGroup = strings.TrimSpace(in.BloodGroup)
		u.Allergies = strings.TrimSpace(in.Allergies)
		code, err := GenerateAccountCode()
		if err != nil {
			return nil, err
		}
		u.Code = code
	}

	return u, nil
}

// Profile is the public projection of a User. Password hash and the
// patient account code never leave the auth package through it.
type Profile struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	DateOfBirth time.Time   `json:"dateOfBirth"`
	Gender      string      `json:"gender,omitempty"`
	Role        access.Role `json:"role"`
	BloodGroup  string      `json:"bloodGroup,omitempty"`
	Allergies   string      `json:"allergies,omitempty"`
	Specialty   string      `json:"specialty,omitempty"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Role:        u.Role,
		BloodGroup:  u.BloodGroup,
		Allergies:   u.Allergies,
		Specialty:   u.Specialty,
	}
}

// Identity returns the access-control identity of the user.
func (u *User) Identity() access.Identity {
	return access.Identity{ID: u.ID, Role: u.Role}
}

// GenerateAccountCode produces a 6-character patient code drawn
// uniformly from A-Z0-9 using crypto/rand.
func GenerateAccountCode() (string, error) {
	max := big.NewInt(int64(len(accountCodeAlphabet)))
	var b strings.Builder
	b.Grow(accountCodeLength)
	for i := 0; i < accountCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", oops.
				Code("AUTH_CODE_FAILED").
				Wrapf(err, "generating account code")
		}
		b.WriteByte(accountCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// UserRepository provides access to user storage.
type UserRepository interface {
	// Create persists a new user and fills in its ID. A duplicate
	// email yields an error wrapping ErrDuplicateEmail.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID. Returns an error wrapping
	// ErrNotFound if no user exists.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email. Returns an error wrapping
	// ErrNotFound if no user exists.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile persists mutable profile fields of the user.
	// Email, password hash, role, and the patient code are left
	// untouched.
	UpdateProfile(ctx context.Context, u *User) error

	// ListByRole returns all users holding the role.
	ListByRole(ctx context.Context, role access.Role) ([]*User, error)
}
