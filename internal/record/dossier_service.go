// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// DossierService coordinates dossier operations: party validation,
// access decisions, and storage.
type DossierService struct {
	dossiers DossierRepository
	users    UserDirectory
	logger   *slog.Logger
}

// NewDossierService creates a DossierService.
func NewDossierService(dossiers DossierRepository, users UserDirectory, logger *slog.Logger) (*DossierService, error) {
	if dossiers == nil {
		return nil, errors.New("dossier repository must not be nil")
	}
	if users == nil {
		return nil, errors.New("user directory must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DossierService{dossiers: dossiers, users: users, logger: logger}, nil
}

// DossierInput is the payload for creating or updating a dossier.
type DossierInput struct {
	Name      string
	DoctorID  int64
	PatientID int64
}

func denied(dec access.Decision) error {
	return oops.
		Code("ACCESS_DENIED").
		With("reason", dec.Reason).
		Errorf("access denied")
}

// validateParties checks that the referenced doctor and patient exist
// and hold the expected roles.
func (s *DossierService) validateParties(ctx context.Context, in DossierInput) error {
	doctor, err := s.users.GetRef(ctx, in.DoctorID)
	if err != nil || doctor.Role != access.RoleDoctor {
		return oops.
			Code("DOSSIER_VALIDATION").
			With("doctor_id", in.DoctorID).
			Errorf("doctor id does not reference a doctor")
	}
	patient, err := s.users.GetRef(ctx, in.PatientID)
	if err != nil || patient.Role != access.RolePatient {
		return oops.
			Code("DOSSIER_VALIDATION").
			With("patient_id", in.PatientID).
			Errorf("patient id does not reference a patient")
	}
	return nil
}

// Create opens a new dossier binding the doctor to the patient.
func (s *DossierService) Create(ctx context.Context, ident access.Identity, in DossierInput) (*Dossier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, oops.
			Code("DOSSIER_VALIDATION").
			Errorf("dossier name must not be empty")
	}
	if err := s.validateParties(ctx, in); err != nil {
		return nil, err
	}

	d := &Dossier{
		Name:      strings.TrimSpace(in.Name),
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
	}
	if dec := access.Decide(ident, access.ActionCreate, d.Snapshot()); !dec.Allowed {
		return nil, denied(dec)
	}

	if err := s.dossiers.Create(ctx, d); err != nil {
		return nil, oops.
			Code("DOSSIER_STORE_FAILED").
			Wrapf(err, "creating dossier")
	}

	s.logger.InfoContext(ctx, "dossier created",
		"dossier_id", d.ID,
		"doctor_id", d.DoctorID,
		"patient_id", d.PatientID,
	)
	return d, nil
}

// Get returns a dossier the identity is allowed to read.
func (s *DossierService) Get(ctx context.Context, ident access.Identity, id int64) (*Dossier, error) {
	d, err := s.dossiers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.
				Code("DOSSIER_NOT_FOUND").
				With("dossier_id", id).
				Errorf("dossier not found")
		}
		return nil, oops.
			Code("DOSSIER_STORE_FAILED").
			Wrapf(err, "loading dossier")
	}

	if dec := access.Decide(ident, access.ActionRead, d.Snapshot()); !dec.Allowed {
		return nil, denied(dec)
	}
	return d, nil
}

// List returns the dossiers visible to the identity: all of them for
// admins, otherwise the ones the identity is a party to.
func (s *DossierService) List(ctx context.Context, ident access.Identity) ([]*Dossier, error) {
	var (
		dossiers []*Dossier
		err      error
	)
	switch ident.Role {
	case access.RoleAdmin:
		dossiers, err = s.dossiers.ListAll(ctx)
	case access.RoleDoctor:
		dossiers, err = s.dossiers.ListByDoctor(ctx, ident.ID)
	default:
		dossiers, err = s.dossiers.ListByPatient(ctx, ident.ID)
	}
	if err != nil {
		return nil, oops.
			Code("DOSSIER_STORE_FAILED").
			Wrapf(err, "listing dossiers")
	}
	return dossiers, nil
}

// Update replaces the dossier's name and parties.
func (s *DossierService) Update(ctx context.Context, ident access.Identity, id int64, in DossierInput) (*Dossier, error) {
	d, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if dec := access.Decide(ident, access.ActionUpdate, d.Snapshot()); !dec.Allowed {
		return nil, denied(dec)
	}

	if strings.TrimSpace(in.Name) == "" {
		return nil, oops.
			Code("DOSSIER_VALIDATION").
			Errorf("dossier name must not be empty")
	}
	if err := s.validateParties(ctx, in); err != nil {
		return nil, err
	}

	d.Name = strings.TrimSpace(in.Name)
	d.DoctorID = in.DoctorID
	d.PatientID = in.PatientID
	if err := s.dossiers.Update(ctx, d); err != nil {
		return nil, oops.
			Code("DOSSIER_STORE_FAILED").
			Wrapf(err, "updating dossier")
	}

	s.logger.InfoContext(ctx, "dossier updated", "dossier_id", d.ID)
	return d, nil
}

// Delete removes a dossier the identity may delete.
func (s *DossierService) Delete(ctx context.Context, ident access.Identity, id int64) error {
	d, err := s.Get(ctx, ident, id)
	if err != nil {
		return err
	}
	if dec := access.Decide(ident, access.ActionDelete, d.Snapshot()); !dec.Allowed {
		return denied(dec)
	}

	if err := s.dossiers.Delete(ctx, id); err != nil {
		return oops.
			Code("DOSSIER_STORE_FAILED").
			Wrapf(err, "deleting dossier")
	}

	s.logger.InfoContext(ctx, "dossier deleted", "dossier_id", id)
	return nil
}
