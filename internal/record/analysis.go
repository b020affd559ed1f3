// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"time"
)

// Analysis is a lab analysis attached to a dossier. Ownership is
// inherited from the dossier; the analysis itself carries no party
// IDs.
type Analysis struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Result        string    `json:"result,omitempty"`
	Date          time.Time `json:"date"`
	Comment       string    `json:"comment,omitempty"`
	Cost          float64   `json:"cost"`
	Reimbursement float64   `json:"reimbursement"`
	DossierID     int64     `json:"dossierId"`
}

// AnalysisRepository provides access to analysis storage.
type AnalysisRepository interface {
	// Create persists a new analysis and fills in its ID.
	Create(ctx context.Context, a *Analysis) error

	// GetByID retrieves an analysis. Returns an error wrapping
	// ErrNotFound if no analysis exists.
	GetByID(ctx context.Context, id int64) (*Analysis, error)

	// ListForDoctor returns analyses whose dossier is owned by the
	// doctor.
	ListForDoctor(ctx context.Context, doctorID int64) ([]*Analysis, error)

	// ListForPatient returns analyses whose dossier belongs to the
	// patient.
	ListForPatient(ctx context.Context, patientID int64) ([]*Analysis, error)

	// ListAll returns every analysis.
	ListAll(ctx context.Context) ([]*Analysis, error)

	// Update persists the analysis's mutable fields.
	Update(ctx context.Context, a *Analysis) error

	// Delete removes the analysis. Returns an error wrapping
	// ErrNotFound if no analysis exists.
	Delete(ctx context.Context, id int64) error
}
