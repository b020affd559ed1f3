// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/wassim-coder/medical-recording/internal/record"
)

type dossierRequest struct {
	Name      string `json:"name"`
	DoctorID  int64  `json:"doctorId"`
	PatientID int64  `json:"patientId"`
}

func (s *Server) handleCreateDossier(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req dossierRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	d, err := s.dossiers.Create(r.Context(), ident, record.DossierInput{
		Name:      req.Name,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
	})
	if err != nil {
		s.countDenial(err, "dossier")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDossier(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	d, err := s.dossiers.Get(r.Context(), ident, id)
	if err != nil {
		s.countDenial(err, "dossier")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleListDossiers(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	ds, err := s.dossiers.List(r.Context(), ident)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleUpdateDossier(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	var req dossierRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	d, err := s.dossiers.Update(r.Context(), ident, id, record.DossierInput{
		Name:      req.Name,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
	})
	if err != nil {
		s.countDenial(err, "dossier")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDossier(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	if err := s.dossiers.Delete(r.Context(), ident, id); err != nil {
		s.countDenial(err, "dossier")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type analysisRequest struct {
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Result        string    `json:"result"`
	Date          time.Time `json:"date"`
	Comment       string    `json:"comment"`
	Cost          float64   `json:"cost"`
	Reimbursement float64   `json:"reimbursement"`
	DossierID     int64     `json:"dossierId"`
}

func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req analysisRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	a, err := s.analyses.Create(r.Context(), ident, record.AnalysisInput{
		Name:          req.Name,
		Type:          req.Type,
		Result:        req.Result,
		Date:          req.Date,
		Comment:       req.Comment,
		Cost:          req.Cost,
		Reimbursement: req.Reimbursement,
		DossierID:     req.DossierID,
	})
	if err != nil {
		s.countDenial(err, "analysis")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	a, err := s.analyses.Get(r.Context(), ident, id)
	if err != nil {
		s.countDenial(err, "analysis")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	as, err := s.analyses.List(r.Context(), ident)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, as)
}

// handlePatchAnalysis applies a partial update. Absent fields are left
// untouched; the dossier linkage cannot be changed.
func (s *Server) handlePatchAnalysis(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	var patch record.AnalysisPatch
	if err := decodeJSON(r, &patch); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	a, err := s.analyses.Patch(r.Context(), ident, id, patch)
	if err != nil {
		s.countDenial(err, "analysis")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	if err := s.analyses.Delete(r.Context(), ident, id); err != nil {
		s.countDenial(err, "analysis")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

type appointmentRequest struct {
	PatientID int64     `json:"patientId"`
	DoctorID  int64     `json:"doctorId"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req appointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	a, err := s.appointments.Create(r.Context(), ident, record.AppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		s.countDenial(err, "appointment")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	a, err := s.appointments.Get(r.Context(), ident, id)
	if err != nil {
		s.countDenial(err, "appointment")
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	as, err := s.appointments.List(r.Context(), ident)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, as)
}
