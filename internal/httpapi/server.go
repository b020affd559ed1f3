// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package httpapi exposes the medical records service over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/auth"
	"github.com/wassim-coder/medical-recording/internal/observability"
	"github.com/wassim-coder/medical-recording/internal/record"
	"github.com/wassim-coder/medical-recording/pkg/errutil"
)

// Server serves the JSON API.
type Server struct {
	addr         string
	auth         *auth.Service
	resets       *auth.PasswordResetService
	issuer       *auth.TokenIssuer
	users        auth.UserRepository
	dossiers     *record.DossierService
	analyses     *record.AnalysisService
	appointments *record.AppointmentService
	metrics      *observability.Metrics
	logger       *slog.Logger

	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// Deps bundles the services the API depends on. Metrics and Logger
// are optional.
type Deps struct {
	Auth         *auth.Service
	Resets       *auth.PasswordResetService
	Issuer       *auth.TokenIssuer
	Users        auth.UserRepository
	Dossiers     *record.DossierService
	Analyses     *record.AnalysisService
	Appointments *record.AppointmentService
	Metrics      *observability.Metrics
	Logger       *slog.Logger
}

// NewServer creates an API server listening on addr once started.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Auth == nil || deps.Resets == nil || deps.Issuer == nil || deps.Users == nil ||
		deps.Dossiers == nil || deps.Analyses == nil || deps.Appointments == nil {
		return nil, oops.Errorf("httpapi: all services are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:         addr,
		auth:         deps.Auth,
		resets:       deps.Resets,
		issuer:       deps.Issuer,
		users:        deps.Users,
		dossiers:     deps.Dossiers,
		analyses:     deps.Analyses,
		appointments: deps.Appointments,
		metrics:      deps.Metrics,
		logger:       logger.With("component", "httpapi"),
	}, nil
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)

	mux.HandleFunc("GET /api/profile", s.requireAuth(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("GET /api/profile/doctors", s.requireAuth(s.handleListDoctors))
	mux.HandleFunc("GET /api/profile/patients", s.requireAuth(s.handleListPatients))

	mux.HandleFunc("GET /api/dossiers", s.requireAuth(s.handleListDossiers))
	mux.HandleFunc("POST /api/dossiers", s.requireAuth(s.handleCreateDossier))
	mux.HandleFunc("GET /api/dossiers/{id}", s.requireAuth(s.handleGetDossier))
	mux.HandleFunc("PUT /api/dossiers/{id}", s.requireAuth(s.handleUpdateDossier))
	mux.HandleFunc("DELETE /api/dossiers/{id}", s.requireAuth(s.handleDeleteDossier))

	mux.HandleFunc("GET /api/analyses", s.requireAuth(s.handleListAnalyses))
	mux.HandleFunc("POST /api/analyses", s.requireAuth(s.handleCreateAnalysis))
	mux.HandleFunc("GET /api/analyses/{id}", s.requireAuth(s.handleGetAnalysis))
	mux.HandleFunc("PATCH /api/analyses/{id}", s.requireAuth(s.handlePatchAnalysis))
	mux.HandleFunc("DELETE /api/analyses/{id}", s.requireAuth(s.handleDeleteAnalysis))

	mux.HandleFunc("GET /api/appointments", s.requireAuth(s.handleListAppointments))
	mux.HandleFunc("POST /api/appointments", s.requireAuth(s.handleCreateAppointment))
	mux.HandleFunc("GET /api/appointments/{id}", s.requireAuth(s.handleGetAppointment))

	return withRequestID(s.withLogging(mux))
}

// Start begins serving the API. It returns an error channel that
// receives any error from the HTTP server after it starts; the channel
// is closed on graceful shutdown.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on, or empty when
// not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

func (s *Server) countRequest(method string, status int) {
	if s.metrics == nil {
		return
	}
	s.metrics.HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (s *Server) countDenial(err error, resource string) {
	if s.metrics == nil || errutil.Code(err) != "ACCESS_DENIED" {
		return
	}
	s.metrics.AccessDenialsTotal.WithLabelValues(resource).Inc()
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, oops.Code("BAD_REQUEST").Errorf("invalid id")
	}
	return id, nil
}
