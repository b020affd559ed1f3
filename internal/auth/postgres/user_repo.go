// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
	"github.com/wassim-coder/medical-recording/internal/auth"
)

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	pool poolIface
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool poolIface) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, date_of_birth, gender, role,
	       blood_group, allergies, code, specialty, salary, created_at`

// Create stores a new user and fills in the generated ID.
func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (
			name, email, password_hash, date_of_birth, gender, role,
			blood_group, allergies, code, specialty, salary, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.DateOfBirth,
		u.Gender,
		string(u.Role),
		u.BloodGroup,
		u.Allergies,
		u.Code,
		u.Specialty,
		u.Salary,
		u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("AUTH_DUPLICATE_EMAIL").
				With("operation", "insert user").
				Wrap(auth.ErrDuplicateEmail)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := r.scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id).
			Wrap(err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	u, err := r.scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			Wrap(err)
	}
	return u, nil
}

// UpdateProfile persists the mutable profile fields of the user.
// Email, password hash, role, and the account code are deliberately
// not part of the statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *auth.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $2, date_of_birth = $3, gender = $4,
		    blood_group = $5, allergies = $6, specialty = $7, salary = $8
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		u.DateOfBirth,
		u.Gender,
		u.BloodGroup,
		u.Allergies,
		u.Specialty,
		u.Salary,
	)
	if err != nil {
		return oops.Code("USER_UPDATE_FAILED").
			With("operation", "update user profile").
			With("id", u.ID).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("USER_NOT_FOUND").
			With("id", u.ID).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// ListByRole returns all users holding the role, ordered by name.
func (r *UserRepository) ListByRole(ctx context.Context, role access.Role) ([]*auth.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		ORDER BY name, id
	`, string(role))
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users by role").
			With("role", string(role)).
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_LIST_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "iterate users").
			Wrap(err)
	}
	return users, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*auth.User, error) {
	var u auth.User
	var role string
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.DateOfBirth,
		&u.Gender,
		&role,
		&u.BloodGroup,
		&u.Allergies,
		&u.Code,
		&u.Specialty,
		&u.Salary,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = access.Role(role)
	return &u, nil
}

var _ auth.UserRepository = (*UserRepository)(nil)
