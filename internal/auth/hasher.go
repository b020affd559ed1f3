// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package auth

import (
	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts password hashing so the algorithm can be
// swapped or mocked in tests.
type PasswordHasher interface {
	// Hash derives a hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the hash. A mismatch
	// is (false, nil); an error means the hash itself is malformed.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt hash from the password. Empty passwords are
// rejected.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", oops.
			Code("AUTH_EMPTY_PASSWORD").
			Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", oops.
			Code("AUTH_HASH_FAILED").
			Wrapf(err, "hashing password")
	}
	return string(hash), nil
}

// Verify compares the password against the stored hash.
func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch err {
	case nil:
		return true, nil
	case bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, oops.
			Code("AUTH_INVALID_HASH").
			Wrapf(err, "comparing password hash")
	}
}

var _ PasswordHasher = (*BcryptHasher)(nil)
