// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

// Package config loads service configuration. Values are layered:
// defaults, then an optional YAML file, then command-line flags, then
// environment variables for secrets.
package config

import (
	"errors"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the full service configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Observability ObservabilityConfig `koanf:"observability"`
	Database      DatabaseConfig      `koanf:"database"`
	Auth          AuthConfig          `koanf:"auth"`
	Reset         ResetConfig         `koanf:"reset"`
	SMTP          SMTPConfig          `koanf:"smtp"`
	Log           LogConfig           `koanf:"log"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// ObservabilityConfig configures the health/metrics listener.
type ObservabilityConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig configures PostgreSQL connectivity.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
	Audience  string `koanf:"audience"`
}

// ResetConfig configures the password reset flow.
type ResetConfig struct {
	// BaseURL is the public origin of the frontend hosting the reset
	// form; the mailed link is BaseURL + "/reset-password?token=...".
	BaseURL string `koanf:"base_url"`
}

// SMTPConfig configures outgoing mail.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Format string `koanf:"format"` // json or text
	Level  string `koanf:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server:        ServerConfig{Addr: ":8080"},
		Observability: ObservabilityConfig{Addr: ":9090"},
		Auth: AuthConfig{
			Issuer:   "medrec",
			Audience: "medrec-clients",
		},
		Reset: ResetConfig{BaseURL: "http://localhost:3000"},
		SMTP:  SMTPConfig{Host: "localhost", Port: 587, From: "no-reply@medrec.local"},
		Log:   LogConfig{Format: "json", Level: "info"},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when empty), and the flag set (skipped when nil). Secrets
// may be overridden by the DATABASE_URL, JWT_SECRET, and SMTP_PASSWORD
// environment variables.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrapf(err, "loading config file")
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_LOAD_FAILED").
				Wrapf(err, "loading flags")
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_LOAD_FAILED").
			Wrapf(err, "unmarshaling config")
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}

	return cfg, nil
}

// Validate checks the configuration for the fields the service cannot
// run without.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required (or set DATABASE_URL)")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (or set JWT_SECRET)")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Reset.BaseURL == "" {
		return errors.New("reset.base_url is required")
	}
	return nil
}
