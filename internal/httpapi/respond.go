// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wassim-coder/medical-recording/pkg/errutil"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	//nolint:errcheck // response write error means the client is gone
	json.NewEncoder(w).Encode(v)
}

// statusForCode maps domain error codes to HTTP statuses. Unknown
// codes are treated as internal errors.
func statusForCode(code string) int {
	switch code {
	case "AUTH_VALIDATION", "AUTH_EMPTY_PASSWORD",
		"DOSSIER_VALIDATION", "ANALYSIS_VALIDATION", "APPOINTMENT_VALIDATION",
		"RESET_TOKEN_INVALID", "BAD_REQUEST":
		return http.StatusBadRequest
	case "AUTH_INVALID_TOKEN", "AUTH_INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "ACCESS_DENIED":
		return http.StatusForbidden
	case "USER_NOT_FOUND", "DOSSIER_NOT_FOUND", "ANALYSIS_NOT_FOUND",
		"APPOINTMENT_NOT_FOUND", "RESET_TOKEN_NOT_FOUND":
		return http.StatusNotFound
	case "AUTH_DUPLICATE_EMAIL", "APPOINTMENT_CONFLICT":
		return http.StatusConflict
	default:
		if strings.HasSuffix(code, "_STORE_FAILED") || code == "STORE_CONNECT_FAILED" {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON error response. Internal errors are
// logged with full context and returned with a generic message so
// database details never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := errutil.Code(err)
	if code == "" {
		code = "INTERNAL"
	}
	status := statusForCode(code)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		errutil.LogError(logger.With("path", r.URL.Path, "method", r.Method), "request failed", err)
		if status == http.StatusInternalServerError {
			code = "INTERNAL"
		}
		msg = "internal server error"
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// badRequest renders a 400 with the given message.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Code: "BAD_REQUEST", Message: msg}})
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
