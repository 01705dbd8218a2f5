package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"barangayhub/api/internal/config"
	"barangayhub/api/internal/security"
	"barangayhub/api/internal/service"
	"barangayhub/api/internal/store"
	"barangayhub/api/internal/store/file"
)

type testEnv struct {
	engine  *gin.Engine
	backend store.Backend
	tokens  *security.TokenManager
}

func newTestEnv(t *testing.T, ttl time.Duration) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := file.Open(t.TempDir())
	require.NoError(t, err)

	tokens := security.NewTokenManager("test-secret", "test", ttl, security.NewMemoryRevocationList())
	handlerSet := NewHandlerSet(zerolog.Nop(), backend, tokens, &config.AppConfig{Environment: "test"})

	engine := gin.New()
	handlerSet.Register(engine)

	return testEnv{engine: engine, backend: backend, tokens: tokens}
}

func (e testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (e testEnv) signup(t *testing.T, fullname, email, password string) map[string]any {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/signup", gin.H{
		"fullname": fullname,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody(t, rec)
}

func (e testEnv) adminToken(t *testing.T) string {
	t.Helper()
	require.NoError(t, service.BootstrapAdmin(context.Background(), e.backend.Admins(), "admin", "hunter2", zerolog.Nop()))

	rec := e.do(t, http.MethodPost, "/admin/login", gin.H{"username": "admin", "password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestSignup_RedactsCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	body := env.signup(t, "Ana Cruz", "ana@example.com", "secret1")
	require.Equal(t, "User registered successfully", body["message"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ana@example.com", user["email"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "password_hash")
}

func TestSignup_MissingFieldsAndDuplicate(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	rec := env.do(t, http.MethodPost, "/auth/signup", gin.H{"email": "a@example.com"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env.signup(t, "Ana", "ana@example.com", "secret1")
	rec = env.do(t, http.MethodPost, "/auth/signup", gin.H{
		"fullname": "Impostor",
		"email":    "ANA@example.com",
		"password": "secret2",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Email already registered", decodeBody(t, rec)["error"])
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	env.signup(t, "Ana Cruz", "ana@example.com", "secret1")

	rec := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ANA@example.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	require.Equal(t, "Login success", body["message"])
	require.NotEmpty(t, body["token"])
}

func TestLogin_EnumerationResistance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	env.signup(t, "Ana", "ana@example.com", "secret1")

	wrongPw := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ana@example.com", "password": "wrong"}, nil)
	unknown := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ghost@example.com", "password": "secret1"}, nil)

	require.Equal(t, http.StatusBadRequest, wrongPw.Code)
	require.Equal(t, http.StatusBadRequest, unknown.Code)
	require.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestAdminEndpoints_RejectUserToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	env.signup(t, "Ana", "ana@example.com", "secret1")
	rec := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ana@example.com", "password": "secret1"}, nil)
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = env.do(t, http.MethodGet, "/admin/users", nil, bearer(token))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_AllFailuresLookAlike(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	foreign := security.NewTokenManager("other-secret", "test", time.Hour, security.NewMemoryRevocationList())
	forged, err := foreign.Issue(1, "admin", "admin")
	require.NoError(t, err)

	expiredEnv := newTestEnv(t, -time.Second)
	expired := expiredEnv.adminToken(t)

	cases := map[string]map[string]string{
		"no header":        nil,
		"malformed scheme": {"Authorization": "Token abc"},
		"garbage token":    bearer("not.a.jwt"),
		"foreign secret":   bearer(forged),
	}

	var want string
	for name, headers := range cases {
		rec := env.do(t, http.MethodGet, "/admin/users", nil, headers)
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		if want == "" {
			want = rec.Body.String()
		} else {
			require.JSONEq(t, want, rec.Body.String(), name)
		}
	}

	rec := expiredEnv.do(t, http.MethodGet, "/admin/users", nil, bearer(expired))
	require.Equal(t, http.StatusUnauthorized, rec.Code, "expired token")
	require.JSONEq(t, want, rec.Body.String(), "expired token")
}

func TestAdminOfficialsFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)
	token := env.adminToken(t)

	// Unauthenticated mutation is rejected.
	rec := env.do(t, http.MethodPost, "/admin/officials", gin.H{"name": "Juan", "position": "Captain"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/admin/officials", gin.H{
		"name":     "Juan Dela Cruz",
		"position": "Captain",
	}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	require.EqualValues(t, 1, created["id"])
	require.Equal(t, "Juan Dela Cruz", created["name"])

	// Roster is public.
	rec = env.do(t, http.MethodGet, "/admin/officials", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var officials []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &officials))
	require.Len(t, officials, 1)
	require.Equal(t, "Captain", officials[0]["position"])

	// Missing position fails validation.
	rec = env.do(t, http.MethodPost, "/admin/officials", gin.H{"name": "Nameless"}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/admin/officials/1", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/admin/officials/1", nil, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminUsersFlow(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)
	token := env.adminToken(t)

	env.signup(t, "Ana Cruz", "ana@example.com", "secret1")

	rec := env.do(t, http.MethodGet, "/admin/users", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	require.NotContains(t, users[0], "password_hash")

	id := int64(users[0]["id"].(float64))
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, bearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The deleted user can no longer log in.
	rec = env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ana@example.com", "password": "secret1"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfile_Authorization(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	body := env.signup(t, "Ana Cruz", "ana@example.com", "secret1")
	user := body["user"].(map[string]any)
	anaID := int64(user["id"].(float64))

	rec := env.do(t, http.MethodPost, "/auth/login", gin.H{"email": "ana@example.com", "password": "secret1"}, nil)
	anaToken, _ := decodeBody(t, rec)["token"].(string)

	// No token at all.
	rec = env.do(t, http.MethodPost, "/auth/profile", gin.H{"id": anaID}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Own profile.
	rec = env.do(t, http.MethodPost, "/auth/profile", gin.H{"id": anaID}, bearer(anaToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "ana@example.com", decodeBody(t, rec)["email"])

	// Somebody else's profile.
	rec = env.do(t, http.MethodPost, "/auth/profile", gin.H{"id": anaID + 100}, bearer(anaToken))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Admin may fetch any profile, and gets 404 for a missing one.
	adminToken := env.adminToken(t)
	rec = env.do(t, http.MethodPost, "/auth/profile", gin.H{"id": anaID}, bearer(adminToken))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/auth/profile", gin.H{"id": anaID + 100}, bearer(adminToken))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTokenExtraction_QueryAndBody(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodGet, "/admin/users?token="+token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/admin/officials", gin.H{
		"token":    token,
		"name":     "Juan Dela Cruz",
		"position": "Captain",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAdminLogout_RevokesToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)
	token := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/admin/logout", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/admin/users", nil, bearer(token))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthAndStatus(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, time.Hour)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, true, body["ok"])
	require.Greater(t, body["time"].(float64), float64(0))

	rec = env.do(t, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Equal(t, true, body["ok"])
	require.Equal(t, "ok", body["db"])
}
