// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/wassim-coder/medical-recording/internal/auth"
	authpg "github.com/wassim-coder/medical-recording/internal/auth/postgres"
	"github.com/wassim-coder/medical-recording/internal/config"
	"github.com/wassim-coder/medical-recording/internal/httpapi"
	"github.com/wassim-coder/medical-recording/internal/logging"
	"github.com/wassim-coder/medical-recording/internal/mail"
	"github.com/wassim-coder/medical-recording/internal/observability"
	"github.com/wassim-coder/medical-recording/internal/record"
	recordpg "github.com/wassim-coder/medical-recording/internal/record/postgres"
	"github.com/wassim-coder/medical-recording/internal/store"
)

// managedServer is implemented by the API and observability servers.
type managedServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

// serveDeps contains injectable dependencies for the serve command.
// Nil fields fall back to their production implementations.
type serveDeps struct {
	// ConnectDB opens the connection pool. Default: store.Connect.
	ConnectDB func(ctx context.Context, url string) (*pgxpool.Pool, error)

	// APIServerFactory creates the API server. Default: httpapi.NewServer.
	APIServerFactory func(addr string, deps httpapi.Deps) (managedServer, error)

	// ObservabilityServerFactory creates the metrics/health server.
	// Default: observability.NewServer.
	ObservabilityServerFactory func(addr string, checker observability.ReadinessChecker) managedServer
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the JSON API server together with the metrics and health
endpoints. Configuration comes from a YAML file, flags, and environment
variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, nil)
		},
	}

	// Flag defaults mirror config.Default so unset flags do not
	// override file values with empty strings.
	defaults := config.Default()
	cmd.Flags().String("server.addr", defaults.Server.Addr, "API listen address")
	cmd.Flags().String("observability.addr", defaults.Observability.Addr, "metrics/health listen address (empty = disabled)")
	cmd.Flags().String("log.format", defaults.Log.Format, "log format (json or text)")

	return cmd
}

// runServe wires the service together and blocks until shutdown.
func runServe(ctx context.Context, cmd *cobra.Command, deps *serveDeps) error {
	if deps == nil {
		deps = &serveDeps{}
	}
	if deps.ConnectDB == nil {
		deps.ConnectDB = store.Connect
	}
	if deps.APIServerFactory == nil {
		deps.APIServerFactory = func(addr string, apiDeps httpapi.Deps) (managedServer, error) {
			return httpapi.NewServer(addr, apiDeps)
		}
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, checker observability.ReadinessChecker) managedServer {
			return observability.NewServer(addr, checker)
		}
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	logging.SetDefault("medrec", version, cfg.Log.Format)
	logger := slog.Default()

	pool, err := deps.ConnectDB(ctx, cfg.Database.URL)
	if err != nil {
		return oops.Code("STORE_CONNECT_FAILED").Wrapf(err, "connecting to database")
	}
	if pool != nil {
		defer pool.Close()
	}
	logger.Info("connected to database")

	// Repositories.
	users := authpg.NewUserRepository(pool)
	resets := authpg.NewResetTokenRepository(pool)
	dossiers := recordpg.NewDossierRepository(pool)
	analyses := recordpg.NewAnalysisRepository(pool)
	appointments := recordpg.NewAppointmentRepository(pool)
	directory := recordpg.NewUserDirectory(pool)

	// Services.
	hasher := auth.NewBcryptHasher()
	issuer, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return err
	}
	authSvc, err := auth.NewService(users, hasher, issuer)
	if err != nil {
		return err
	}
	mailer := mail.NewSMTPMailer(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, logger)
	resetSvc, err := auth.NewPasswordResetService(
		users, resets, hasher, mailer, cfg.Reset.BaseURL, logger)
	if err != nil {
		return err
	}
	dossierSvc, err := record.NewDossierService(dossiers, directory, logger)
	if err != nil {
		return err
	}
	analysisSvc, err := record.NewAnalysisService(analyses, dossiers, logger)
	if err != nil {
		return err
	}
	appointmentSvc, err := record.NewAppointmentService(appointments, directory, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Observability server comes up first so readiness reflects the API.
	var (
		obsServer managedServer
		metrics   *observability.Metrics
	)
	if cfg.Observability.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Observability.Addr, func() bool { return true })
		if provider, ok := obsServer.(interface{ Metrics() *observability.Metrics }); ok {
			metrics = provider.Metrics()
		}
		obsErrCh, err := obsServer.Start()
		if err != nil {
			return oops.Wrapf(err, "starting observability server")
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	apiServer, err := deps.APIServerFactory(cfg.Server.Addr, httpapi.Deps{
		Auth:         authSvc,
		Resets:       resetSvc,
		Issuer:       issuer,
		Users:        users,
		Dossiers:     dossierSvc,
		Analyses:     analysisSvc,
		Appointments: appointmentSvc,
		Metrics:      metrics,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	apiErrCh, err := apiServer.Start()
	if err != nil {
		return oops.Wrapf(err, "starting api server")
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	cmd.Println("Server started on " + apiServer.Addr())

	// Handle signals.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Warn("error stopping api server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels the context when a server reports an
// error, so one failing listener brings the whole process down
// cleanly. It exits when the channel closes or the context ends.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
