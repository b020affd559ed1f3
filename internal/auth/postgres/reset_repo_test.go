// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wassim-coder/medical-recording/internal/auth"
)

func TestResetTokenRepository_Issue(t *testing.T) {
	ctx := context.Background()

	rec, _, err := auth.NewResetToken("alice@example.com")
	require.NoError(t, err)

	t.Run("invalidates previous tokens and inserts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE password_reset_tokens\s+SET used = TRUE\s+WHERE email =`).
			WithArgs("alice@example.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`INSERT INTO password_reset_tokens`).
			WithArgs(rec.ID.String(), rec.Email, rec.TokenHash, rec.ExpiresAt, rec.Used, rec.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := NewResetTokenRepository(mock)
		require.NoError(t, repo.Issue(ctx, rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE password_reset_tokens`).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectExec(`INSERT INTO password_reset_tokens`).
			WillReturnError(errors.New("connection refused"))
		mock.ExpectRollback()

		repo := NewResetTokenRepository(mock)
		err = repo.Issue(ctx, rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResetTokenRepository_Redeem(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	const tokenHash = "deadbeef"
	const newHash = "$2a$10$newhash"

	t.Run("consumes token and updates password atomically", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, email\s+FROM password_reset_tokens\s+WHERE token_hash =`).
			WithArgs(tokenHash, now).
			WillReturnRows(pgxmock.NewRows([]string{"id", "email"}).
				AddRow("01ARZ3NDEKTSV4RRFFQ69G5FAV", "alice@example.com"))
		mock.ExpectExec(`UPDATE password_reset_tokens\s+SET used = TRUE\s+WHERE id =`).
			WithArgs("01ARZ3NDEKTSV4RRFFQ69G5FAV").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE users\s+SET password_hash =`).
			WithArgs(newHash, "alice@example.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		repo := NewResetTokenRepository(mock)
		email, err := repo.Redeem(ctx, tokenHash, newHash, now)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown or expired token maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, email\s+FROM password_reset_tokens`).
			WithArgs(tokenHash, now).
			WillReturnRows(pgxmock.NewRows([]string{"id", "email"}))
		mock.ExpectRollback()

		repo := NewResetTokenRepository(mock)
		_, err = repo.Redeem(ctx, tokenHash, newHash, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("password update failure rolls back token consumption", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, email\s+FROM password_reset_tokens`).
			WithArgs(tokenHash, now).
			WillReturnRows(pgxmock.NewRows([]string{"id", "email"}).
				AddRow("01ARZ3NDEKTSV4RRFFQ69G5FAV", "alice@example.com"))
		mock.ExpectExec(`UPDATE password_reset_tokens`).
			WithArgs("01ARZ3NDEKTSV4RRFFQ69G5FAV").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE users`).
			WithArgs(newHash, "alice@example.com").
			WillReturnError(errors.New("connection refused"))
		mock.ExpectRollback()

		repo := NewResetTokenRepository(mock)
		_, err = repo.Redeem(ctx, tokenHash, newHash, now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("token without account maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, email\s+FROM password_reset_tokens`).
			WithArgs(tokenHash, now).
			WillReturnRows(pgxmock.NewRows([]string{"id", "email"}).
				AddRow("01ARZ3NDEKTSV4RRFFQ69G5FAV", "ghost@example.com"))
		mock.ExpectExec(`UPDATE password_reset_tokens`).
			WithArgs("01ARZ3NDEKTSV4RRFFQ69G5FAV").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`UPDATE users`).
			WithArgs(newHash, "ghost@example.com").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		repo := NewResetTokenRepository(mock)
		_, err = repo.Redeem(ctx, tokenHash, newHash, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
