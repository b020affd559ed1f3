// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/wassim-coder/medical-recording/internal/access"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "request_id"
)

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (access.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(access.Identity)
	return ident, ok
}

// withRequestID tags each request with a fresh ID, exposed in the
// X-Request-Id response header and the request context.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// withLogging logs one line per request and feeds the request counter.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		reqID, _ := r.Context().Value(requestIDKey).(string)
		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", reqID,
		)
		s.countRequest(r.Method, rec.status)
	})
}

// requireAuth verifies the bearer token and places the caller identity
// in the request context. Tokens whose subject is not a numeric user
// ID fall back to a lookup by the email claim.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, r, s.logger, oops.
				Code("AUTH_INVALID_TOKEN").
				Errorf("missing bearer token"))
			return
		}

		claims, err := s.issuer.Verify(raw)
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}

		role, err := access.NormalizeRole(claims.Role)
		if err != nil {
			writeError(w, r, s.logger, oops.
				Code("AUTH_INVALID_TOKEN").
				Wrapf(err, "verifying token role"))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			u, lookupErr := s.users.GetByEmail(r.Context(), claims.Email)
			if lookupErr != nil {
				writeError(w, r, s.logger, oops.
					Code("AUTH_INVALID_TOKEN").
					Errorf("token does not identify a known user"))
				return
			}
			userID = u.ID
		}

		ident := access.Identity{ID: userID, Role: role}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, ident)))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
