// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"time"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// Dossier is a medical file binding one doctor to one patient.
type Dossier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DoctorID  int64     `json:"doctorId"`
	PatientID int64     `json:"patientId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot returns the ownership view used for access decisions.
func (d *Dossier) Snapshot() access.Dossier {
	return access.Dossier{DoctorID: d.DoctorID, PatientID: d.PatientID}
}

// DossierRepository provides access to dossier storage.
type DossierRepository interface {
	// Create persists a new dossier and fills in its ID.
	Create(ctx context.Context, d *Dossier) error

	// GetByID retrieves a dossier. Returns an error wrapping
	// ErrNotFound if no dossier exists.
	GetByID(ctx context.Context, id int64) (*Dossier, error)

	// ListByDoctor returns dossiers owned by the doctor.
	ListByDoctor(ctx context.Context, doctorID int64) ([]*Dossier, error)

	// ListByPatient returns dossiers belonging to the patient.
	ListByPatient(ctx context.Context, patientID int64) ([]*Dossier, error)

	// ListAll returns every dossier.
	ListAll(ctx context.Context) ([]*Dossier, error)

	// Update persists the dossier's mutable fields.
	Update(ctx context.Context, d *Dossier) error

	// Delete removes the dossier. Returns an error wrapping
	// ErrNotFound if no dossier exists.
	Delete(ctx context.Context, id int64) error
}
