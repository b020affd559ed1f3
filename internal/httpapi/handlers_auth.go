// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
	"github.com/wassim-coder/medical-recording/internal/auth"
	"github.com/wassim-coder/medical-recording/pkg/errutil"
)

type registerRequest struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Role        string    `json:"role"`
	BloodGroup  string    `json:"bloodGroup"`
	Allergies   string    `json:"allergies"`
	Specialty   string    `json:"specialty"`
	Salary      float64   `json:"salary"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Token string       `json:"token"`
	User  auth.Profile `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	token, profile, err := s.auth.Register(r.Context(), auth.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Role:        req.Role,
		BloodGroup:  req.BloodGroup,
		Allergies:   req.Allergies,
		Specialty:   req.Specialty,
		Salary:      req.Salary,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(string(profile.Role)).Inc()
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: profile})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	token, profile, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if s.metrics != nil && errutil.Code(err) == "AUTH_INVALID_CREDENTIALS" {
			s.metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		writeError(w, r, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues("success").Inc()
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: profile})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		badRequest(w, "email is required")
		return
	}

	if err := s.resets.Request(r.Context(), req.Email); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ResetRequestsTotal.Inc()
	}
	// Same response whether the address is registered or not.
	writeJSON(w, http.StatusAccepted, map[string]string{
		"message": "if the address is registered, a reset link has been sent",
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		badRequest(w, "token and newPassword are required")
		return
	}

	if err := s.resets.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	u, err := s.users.GetByID(r.Context(), ident.ID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, u.Profile())
}

type profileUpdateRequest struct {
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	BloodGroup  string    `json:"bloodGroup"`
	Allergies   string    `json:"allergies"`
	Specialty   string    `json:"specialty"`
	Salary      float64   `json:"salary"`
}

// handleUpdateProfile replaces the caller's mutable profile fields.
// Email, password, role, and the account code cannot be changed here,
// and role-specific fields only apply to the matching role.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, r, s.logger, oops.
			Code("AUTH_VALIDATION").
			Errorf("name must not be empty"))
		return
	}

	u, err := s.users.GetByID(r.Context(), ident.ID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	u.Name = req.Name
	u.DateOfBirth = req.DateOfBirth
	u.Gender = req.Gender
	switch ident.Role {
	case access.RolePatient:
		u.BloodGroup = req.BloodGroup
		u.Allergies = req.Allergies
	case access.RoleDoctor:
		u.Specialty = req.Specialty
		u.Salary = req.Salary
	}

	if err := s.users.UpdateProfile(r.Context(), u); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, u.Profile())
}

func (s *Server) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	s.listProfilesByRole(w, r, access.RoleDoctor)
}

func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request) {
	s.listProfilesByRole(w, r, access.RolePatient)
}

func (s *Server) listProfilesByRole(w http.ResponseWriter, r *http.Request, role access.Role) {
	users, err := s.users.ListByRole(r.Context(), role)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	profiles := make([]auth.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	writeJSON(w, http.StatusOK, profiles)
}
