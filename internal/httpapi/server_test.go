// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Medical Recording Contributors

package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wassim-coder/medical-recording/internal/access"
	"github.com/wassim-coder/medical-recording/internal/auth"
	authmocks "github.com/wassim-coder/medical-recording/internal/auth/mocks"
	"github.com/wassim-coder/medical-recording/internal/httpapi"
	"github.com/wassim-coder/medical-recording/internal/record"
	recordmocks "github.com/wassim-coder/medical-recording/internal/record/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testEnv wires real services over mocked repositories.
type testEnv struct {
	server       *httpapi.Server
	handler      http.Handler
	issuer       *auth.TokenIssuer
	users        *authmocks.MockUserRepository
	resets       *authmocks.MockResetTokenRepository
	notifier     *authmocks.MockNotifier
	dossiers     *recordmocks.MockDossierRepository
	analyses     *recordmocks.MockAnalysisRepository
	appointments *recordmocks.MockAppointmentRepository
	directory    *recordmocks.MockUserDirectory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		users:        authmocks.NewMockUserRepository(t),
		resets:       authmocks.NewMockResetTokenRepository(t),
		notifier:     authmocks.NewMockNotifier(t),
		dossiers:     recordmocks.NewMockDossierRepository(t),
		analyses:     recordmocks.NewMockAnalysisRepository(t),
		appointments: recordmocks.NewMockAppointmentRepository(t),
		directory:    recordmocks.NewMockUserDirectory(t),
	}

	issuer, err := auth.NewTokenIssuer([]byte("test-secret-key-for-api-tests"), "medrec", "medrec-clients")
	require.NoError(t, err)
	env.issuer = issuer

	hasher := auth.NewBcryptHasher()

	authSvc, err := auth.NewServiceWithLogger(env.users, hasher, issuer, logger)
	require.NoError(t, err)

	resetSvc, err := auth.NewPasswordResetService(
		env.users, env.resets, hasher, env.notifier, "https://app.example.com", logger)
	require.NoError(t, err)

	dossierSvc, err := record.NewDossierService(env.dossiers, env.directory, logger)
	require.NoError(t, err)
	analysisSvc, err := record.NewAnalysisService(env.analyses, env.dossiers, logger)
	require.NoError(t, err)
	appointmentSvc, err := record.NewAppointmentService(env.appointments, env.directory, logger)
	require.NoError(t, err)

	server, err := httpapi.NewServer("127.0.0.1:0", httpapi.Deps{
		Auth:         authSvc,
		Resets:       resetSvc,
		Issuer:       issuer,
		Users:        env.users,
		Dossiers:     dossierSvc,
		Analyses:     analysisSvc,
		Appointments: appointmentSvc,
		Logger:       logger,
	})
	require.NoError(t, err)

	env.server = server
	env.handler = server.Handler()
	return env
}

// tokenFor issues a valid token for the given user.
func (env *testEnv) tokenFor(t *testing.T, id int64, role access.Role, email string) string {
	t.Helper()
	token, err := env.issuer.Issue(&auth.User{ID: id, Role: role, Email: email})
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestServer_Register(t *testing.T) {
	t.Run("creates a patient account", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*auth.User).ID = 7
			}).
			Return(nil)

		rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Alice",
			"email":    "Alice@Example.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeBody[struct {
			Token string       `json:"token"`
			User  auth.Profile `json:"user"`
		}](t, rec)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(7), resp.User.ID)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, access.RolePatient, resp.User.Role)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name":     "Alice",
			"email":    "alice@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "AUTH_VALIDATION", errorCode(t, rec))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		env := newTestEnv(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_Login(t *testing.T) {
	hasher := auth.NewBcryptHasher()
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	t.Run("returns token for valid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(&auth.User{ID: 7, Email: "alice@example.com", Role: access.RolePatient, PasswordHash: hash}, nil)

		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[struct {
			Token string `json:"token"`
		}](t, rec)
		claims, err := env.issuer.Verify(resp.Token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("rejects wrong password with 401", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(&auth.User{ID: 7, Email: "alice@example.com", Role: access.RolePatient, PasswordHash: hash}, nil)

		rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_INVALID_CREDENTIALS", errorCode(t, rec))
	})
}

func TestServer_RequireAuth(t *testing.T) {
	t.Run("rejects missing token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/dossiers", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_INVALID_TOKEN", errorCode(t, rec))
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/dossiers", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sets request id header", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/dossiers", "", nil)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	})
}

func TestServer_Profile(t *testing.T) {
	t.Run("returns own profile", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByID", mock.Anything, int64(7)).
			Return(&auth.User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: access.RolePatient}, nil)

		token := env.tokenFor(t, 7, access.RolePatient, "alice@example.com")
		rec := env.do(t, http.MethodGet, "/api/profile", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		profile := decodeBody[auth.Profile](t, rec)
		assert.Equal(t, "Alice", profile.Name)
	})

	t.Run("updates mutable fields only", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByID", mock.Anything, int64(7)).
			Return(&auth.User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: access.RolePatient}, nil)
		env.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Name == "Alice Smith" && u.BloodGroup == "O+" && u.Email == "alice@example.com"
		})).Return(nil)

		token := env.tokenFor(t, 7, access.RolePatient, "alice@example.com")
		rec := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{
			"name":       "Alice Smith",
			"bloodGroup": "O+",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("patient cannot set doctor fields", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByID", mock.Anything, int64(7)).
			Return(&auth.User{ID: 7, Name: "Alice", Email: "alice@example.com", Role: access.RolePatient}, nil)
		env.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.Specialty == "" && u.Salary == 0 && u.BloodGroup == "AB-"
		})).Return(nil)

		token := env.tokenFor(t, 7, access.RolePatient, "alice@example.com")
		rec := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{
			"name":       "Alice",
			"bloodGroup": "AB-",
			"specialty":  "cardiology",
			"salary":     90000,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("doctor cannot set patient fields", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetByID", mock.Anything, int64(1)).
			Return(&auth.User{ID: 1, Name: "Dr. Who", Email: "doc@example.com", Role: access.RoleDoctor, Specialty: "cardiology"}, nil)
		env.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.BloodGroup == "" && u.Allergies == "" && u.Specialty == "neurology"
		})).Return(nil)

		token := env.tokenFor(t, 1, access.RoleDoctor, "doc@example.com")
		rec := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{
			"name":       "Dr. Who",
			"specialty":  "neurology",
			"bloodGroup": "O+",
			"allergies":  "pollen",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, 7, access.RolePatient, "alice@example.com")
		rec := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("lists doctors", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("ListByRole", mock.Anything, access.RoleDoctor).
			Return([]*auth.User{
				{ID: 1, Name: "Dr. Who", Role: access.RoleDoctor, Specialty: "cardiology"},
			}, nil)

		token := env.tokenFor(t, 7, access.RolePatient, "alice@example.com")
		rec := env.do(t, http.MethodGet, "/api/profile/doctors", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		profiles := decodeBody[[]auth.Profile](t, rec)
		require.Len(t, profiles, 1)
		assert.Equal(t, "cardiology", profiles[0].Specialty)
	})
}
