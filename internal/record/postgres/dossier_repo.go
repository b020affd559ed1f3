// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/record"
)

// DossierRepository implements record.DossierRepository using
// PostgreSQL.
type DossierRepository struct {
	pool poolIface
}

// NewDossierRepository creates a new DossierRepository.
func NewDossierRepository(pool poolIface) *DossierRepository {
	return &DossierRepository{pool: pool}
}

const dossierColumns = `id, name, doctor_id, patient_id, created_at`

// Create stores a new dossier and fills in the generated ID.
func (r *DossierRepository) Create(ctx context.Context, d *record.Dossier) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO dossiers (name, doctor_id, patient_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, d.Name, d.DoctorID, d.PatientID).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return oops.Code("DOSSIER_CREATE_FAILED").
			With("operation", "insert dossier").
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a dossier by ID.
func (r *DossierRepository) GetByID(ctx context.Context, id int64) (*record.Dossier, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+dossierColumns+`
		FROM dossiers
		WHERE id = $1
	`, id)

	d, err := scanDossier(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("DOSSIER_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("DOSSIER_GET_FAILED").
			With("operation", "get dossier by id").
			With("id", id).
			Wrap(err)
	}
	return d, nil
}

// ListByDoctor returns dossiers owned by the doctor.
func (r *DossierRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*record.Dossier, error) {
	return r.list(ctx, `
		SELECT `+dossierColumns+`
		FROM dossiers
		WHERE doctor_id = $1
		ORDER BY id
	`, doctorID)
}

// ListByPatient returns dossiers belonging to the patient.
func (r *DossierRepository) ListByPatient(ctx context.Context, patientID int64) ([]*record.Dossier, error) {
	return r.list(ctx, `
		SELECT `+dossierColumns+`
		FROM dossiers
		WHERE patient_id = $1
		ORDER BY id
	`, patientID)
}

// ListAll returns every dossier.
func (r *DossierRepository) ListAll(ctx context.Context) ([]*record.Dossier, error) {
	return r.list(ctx, `
		SELECT `+dossierColumns+`
		FROM dossiers
		ORDER BY id
	`)
}

func (r *DossierRepository) list(ctx context.Context, query string, args ...any) ([]*record.Dossier, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("DOSSIER_LIST_FAILED").
			With("operation", "list dossiers").
			Wrap(err)
	}
	defer rows.Close()

	var dossiers []*record.Dossier
	for rows.Next() {
		d, err := scanDossier(rows)
		if err != nil {
			return nil, oops.Code("DOSSIER_LIST_FAILED").
				With("operation", "scan dossier row").
				Wrap(err)
		}
		dossiers = append(dossiers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("DOSSIER_LIST_FAILED").
			With("operation", "iterate dossiers").
			Wrap(err)
	}
	return dossiers, nil
}

// Update persists the dossier's mutable fields.
func (r *DossierRepository) Update(ctx context.Context, d *record.Dossier) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE dossiers
		SET name = $2, doctor_id = $3, patient_id = $4
		WHERE id = $1
	`, d.ID, d.Name, d.DoctorID, d.PatientID)
	if err != nil {
		return oops.Code("DOSSIER_UPDATE_FAILED").
			With("operation", "update dossier").
			With("id", d.ID).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("DOSSIER_NOT_FOUND").
			With("id", d.ID).
			Wrap(record.ErrNotFound)
	}
	return nil
}

// Delete removes the dossier. Analyses referencing it are removed by
// the schema's cascade.
func (r *DossierRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dossiers WHERE id = $1`, id)
	if err != nil {
		return oops.Code("DOSSIER_DELETE_FAILED").
			With("operation", "delete dossier").
			With("id", id).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("DOSSIER_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	return nil
}

func scanDossier(row pgx.Row) (*record.Dossier, error) {
	var d record.Dossier
	if err := row.Scan(&d.ID, &d.Name, &d.DoctorID, &d.PatientID, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

var _ record.DossierRepository = (*DossierRepository)(nil)
