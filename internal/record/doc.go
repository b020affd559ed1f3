// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package record holds the medical record domain: dossiers, lab
// analyses, and appointments.
//
// Services take the authenticated identity on every call, load the
// ownership snapshot of the target resource, and ask the access
// package before touching storage. Repositories are plain storage
// interfaces with PostgreSQL implementations in record/postgres.
package record
