// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package record

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
)

// AnalysisService coordinates analysis operations. Every decision is
// made against the parent dossier's ownership, loaded fresh on each
// call.
type AnalysisService struct {
	analyses AnalysisRepository
	dossiers DossierRepository
	logger   *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(analyses AnalysisRepository, dossiers DossierRepository, logger *slog.Logger) (*AnalysisService, error) {
	if analyses == nil {
		return nil, errors.New("analysis repository must not be nil")
	}
	if dossiers == nil {
		return nil, errors.New("dossier repository must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{analyses: analyses, dossiers: dossiers, logger: logger}, nil
}

// AnalysisInput is the payload for creating an analysis.
type AnalysisInput struct {
	Name          string
	Type          string
	Result        string
	Date          time.Time
	Comment       string
	Cost          float64
	Reimbursement float64
	DossierID     int64
}

// AnalysisPatch carries a partial update. Nil fields are left
// untouched. The analysis ID and its dossier linkage are not
// patchable and deliberately have no fields here.
type AnalysisPatch struct {
	Name          *string    `json:"name"`
	Type          *string    `json:"type"`
	Result        *string    `json:"result"`
	Date          *time.Time `json:"date"`
	Comment       *string    `json:"comment"`
	Cost          *float64   `json:"cost"`
	Reimbursement *float64   `json:"reimbursement"`
}

// dossierSnapshot loads the parent dossier's ownership view.
func (s *AnalysisService) dossierSnapshot(ctx context.Context, dossierID int64) (access.Analysis, error) {
	d, err := s.dossiers.GetByID(ctx, dossierID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return access.Analysis{}, oops.
				Code("ANALYSIS_VALIDATION").
				With("dossier_id", dossierID).
				Errorf("invalid or non-existent dossier")
		}
		return access.Analysis{}, oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "loading dossier")
	}
	return access.Analysis{Dossier: d.Snapshot()}, nil
}

// Create attaches a new analysis to a dossier. Only the dossier's
// doctor may create one.
func (s *AnalysisService) Create(ctx context.Context, ident access.Identity, in AnalysisInput) (*Analysis, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" {
		return nil, oops.
			Code("ANALYSIS_VALIDATION").
			Errorf("analysis name and type must not be empty")
	}

	snap, err := s.dossierSnapshot(ctx, in.DossierID)
	if err != nil {
		return nil, err
	}
	if dec := access.Decide(ident, access.ActionCreate, snap); !dec.Allowed {
		return nil, denied(dec)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	a := &Analysis{
		Name:          strings.TrimSpace(in.Name),
		Type:          strings.TrimSpace(in.Type),
		Result:        in.Result,
		Date:          date,
		Comment:       in.Comment,
		Cost:          in.Cost,
		Reimbursement: in.Reimbursement,
		DossierID:     in.DossierID,
	}
	if err := s.analyses.Create(ctx, a); err != nil {
		return nil, oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "creating analysis")
	}

	s.logger.InfoContext(ctx, "analysis created",
		"analysis_id", a.ID,
		"dossier_id", a.DossierID,
	)
	return a, nil
}

// Get returns an analysis the identity may read.
func (s *AnalysisService) Get(ctx context.Context, ident access.Identity, id int64) (*Analysis, error) {
	a, err := s.analyses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.
				Code("ANALYSIS_NOT_FOUND").
				With("analysis_id", id).
				Errorf("analysis not found")
		}
		return nil, oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "loading analysis")
	}

	snap, err := s.dossierSnapshot(ctx, a.DossierID)
	if err != nil {
		return nil, err
	}
	if dec := access.Decide(ident, access.ActionRead, snap); !dec.Allowed {
		return nil, denied(dec)
	}
	return a, nil
}

// List returns the analyses visible to the identity, scoped through
// dossier ownership.
func (s *AnalysisService) List(ctx context.Context, ident access.Identity) ([]*Analysis, error) {
	var (
		analyses []*Analysis
		err      error
	)
	switch ident.Role {
	case access.RolePatient:
		analyses, err = s.analyses.ListForPatient(ctx, ident.ID)
	case access.RoleDoctor:
		analyses, err = s.analyses.ListForDoctor(ctx, ident.ID)
	default:
		analyses, err = s.analyses.ListAll(ctx)
	}
	if err != nil {
		return nil, oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "listing analyses")
	}
	return analyses, nil
}

// Patch applies a partial update to an analysis. Only the dossier's
// doctor may modify it; the dossier linkage cannot be moved.
func (s *AnalysisService) Patch(ctx context.Context, ident access.Identity, id int64, patch AnalysisPatch) (*Analysis, error) {
	a, err := s.Get(ctx, ident, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.dossierSnapshot(ctx, a.DossierID)
	if err != nil {
		return nil, err
	}
	if dec := access.Decide(ident, access.ActionUpdate, snap); !dec.Allowed {
		return nil, denied(dec)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, oops.
				Code("ANALYSIS_VALIDATION").
				Errorf("analysis name must not be empty")
		}
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		if strings.TrimSpace(*patch.Type) == "" {
			return nil, oops.
				Code("ANALYSIS_VALIDATION").
				Errorf("analysis type must not be empty")
		}
		a.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Result != nil {
		a.Result = *patch.Result
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Comment != nil {
		a.Comment = *patch.Comment
	}
	if patch.Cost != nil {
		a.Cost = *patch.Cost
	}
	if patch.Reimbursement != nil {
		a.Reimbursement = *patch.Reimbursement
	}

	if err := s.analyses.Update(ctx, a); err != nil {
		return nil, oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "updating analysis")
	}

	s.logger.InfoContext(ctx, "analysis updated", "analysis_id", a.ID)
	return a, nil
}

// Delete removes an analysis. Only the dossier's doctor may delete it.
func (s *AnalysisService) Delete(ctx context.Context, ident access.Identity, id int64) error {
	a, err := s.Get(ctx, ident, id)
	if err != nil {
		return err
	}

	snap, err := s.dossierSnapshot(ctx, a.DossierID)
	if err != nil {
		return err
	}
	if dec := access.Decide(ident, access.ActionDelete, snap); !dec.Allowed {
		return denied(dec)
	}

	if err := s.analyses.Delete(ctx, id); err != nil {
		return oops.
			Code("ANALYSIS_STORE_FAILED").
			Wrapf(err, "deleting analysis")
	}

	s.logger.InfoContext(ctx, "analysis deleted", "analysis_id", id)
	return nil
}
