// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package auth provides authentication primitives for the medical
// records API.
//
// # Domain Types
//
// Domain types (User, ResetToken) should be created using their
// respective constructors:
//   - NewUser - creates a User with normalized role and per-role defaults
//   - NewResetToken - creates a ResetToken with a fresh random token
//
// Direct struct initialization bypasses validation and may create
// invalid state. Repository implementations receive pre-validated
// types from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - registration and login
//   - PasswordResetService - the time-boxed password reset flow
//
// Token issuance and verification live on TokenIssuer, which holds the
// signing key as injected, read-only state.
package auth
