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

// AnalysisRepository implements record.AnalysisRepository using
// PostgreSQL.
type AnalysisRepository struct {
	pool poolIface
}

// NewAnalysisRepository creates a new AnalysisRepository.
func NewAnalysisRepository(pool poolIface) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

const analysisColumns = `a.id, a.name, a.type, a.result, a.date, a.comment,
	       a.cost, a.reimbursement, a.dossier_id`

// Create stores a new analysis and fills in the generated ID.
func (r *AnalysisRepository) Create(ctx context.Context, a *record.Analysis) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO analyses (name, type, result, date, comment, cost, reimbursement, dossier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, a.Name, a.Type, a.Result, a.Date, a.Comment, a.Cost, a.Reimbursement, a.DossierID).Scan(&a.ID)
	if err != nil {
		return oops.Code("ANALYSIS_CREATE_FAILED").
			With("operation", "insert analysis").
			With("dossier_id", a.DossierID).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves an analysis by ID.
func (r *AnalysisRepository) GetByID(ctx context.Context, id int64) (*record.Analysis, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses a
		WHERE a.id = $1
	`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ANALYSIS_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ANALYSIS_GET_FAILED").
			With("operation", "get analysis by id").
			With("id", id).
			Wrap(err)
	}
	return a, nil
}

// ListForDoctor returns analyses whose dossier is owned by the doctor.
func (r *AnalysisRepository) ListForDoctor(ctx context.Context, doctorID int64) ([]*record.Analysis, error) {
	return r.list(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses a
		JOIN dossiers d ON d.id = a.dossier_id
		WHERE d.doctor_id = $1
		ORDER BY a.id
	`, doctorID)
}

// ListForPatient returns analyses whose dossier belongs to the
// patient.
func (r *AnalysisRepository) ListForPatient(ctx context.Context, patientID int64) ([]*record.Analysis, error) {
	return r.list(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses a
		JOIN dossiers d ON d.id = a.dossier_id
		WHERE d.patient_id = $1
		ORDER BY a.id
	`, patientID)
}

// ListAll returns every analysis.
func (r *AnalysisRepository) ListAll(ctx context.Context) ([]*record.Analysis, error) {
	return r.list(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses a
		ORDER BY a.id
	`)
}

func (r *AnalysisRepository) list(ctx context.Context, query string, args ...any) ([]*record.Analysis, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("ANALYSIS_LIST_FAILED").
			With("operation", "list analyses").
			Wrap(err)
	}
	defer rows.Close()

	var analyses []*record.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, oops.Code("ANALYSIS_LIST_FAILED").
				With("operation", "scan analysis row").
				Wrap(err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ANALYSIS_LIST_FAILED").
			With("operation", "iterate analyses").
			Wrap(err)
	}
	return analyses, nil
}

// Update persists the analysis's mutable fields. The dossier linkage
// is not part of the statement.
func (r *AnalysisRepository) Update(ctx context.Context, a *record.Analysis) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE analyses
		SET name = $2, type = $3, result = $4, date = $5,
		    comment = $6, cost = $7, reimbursement = $8
		WHERE id = $1
	`, a.ID, a.Name, a.Type, a.Result, a.Date, a.Comment, a.Cost, a.Reimbursement)
	if err != nil {
		return oops.Code("ANALYSIS_UPDATE_FAILED").
			With("operation", "update analysis").
			With("id", a.ID).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ANALYSIS_NOT_FOUND").
			With("id", a.ID).
			Wrap(record.ErrNotFound)
	}
	return nil
}

// Delete removes the analysis.
func (r *AnalysisRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return oops.Code("ANALYSIS_DELETE_FAILED").
			With("operation", "delete analysis").
			With("id", id).
			Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("ANALYSIS_NOT_FOUND").
			With("id", id).
			Wrap(record.ErrNotFound)
	}
	return nil
}

func scanAnalysis(row pgx.Row) (*record.Analysis, error) {
	var a record.Analysis
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.Result,
		&a.Date,
		&a.Comment,
		&a.Cost,
		&a.Reimbursement,
		&a.DossierID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

var _ record.AnalysisRepository = (*AnalysisRepository)(nil)
