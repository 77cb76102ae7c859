package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-login-service/auth"
	"github.com/jrsteele09/go-login-service/hasher"
	"github.com/jrsteele09/go-login-service/internal/config"
	"github.com/jrsteele09/go-login-service/server"
	"github.com/jrsteele09/go-login-service/sessions"
	fakeuserstore "github.com/jrsteele09/go-login-service/users/repofake"
)

// testServer wires a real auth service over a fake store behind the HTTP layer
type testServer struct {
	server *server.Server
	store  *fakeuserstore.FakeUserStore
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store := fakeuserstore.NewFakeUserStore()
	sessionMgr, err := sessions.NewManager(store)
	require.NoError(t, err)
	authService, err := auth.NewAuthService(store, hasher.NewSHA256Hasher(), sessionMgr)
	require.NoError(t, err)

	s, err := server.New(config.New(), authService)
	require.NoError(t, err)

	return &testServer{server: s, store: store}
}

// post sends a JSON body and decodes the uniform response envelope
func (ts *testServer) post(t *testing.T, route string, body any) (int, server.AuthorizationResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)

	var resp server.AuthorizationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestRegisterEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("success", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, server.StatusSuccess, resp.Status)
		require.Equal(t, "u001", resp.UserID)
		require.NotNil(t, resp.SessionToken)
		require.Empty(t, resp.ErrorMessage)
	})

	t.Run("short password", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "bob", Password: "short"})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, server.StatusFailure, resp.Status)
		require.Equal(t, "password must be between 8 and 12 characters long", resp.ErrorMessage)
	})

	t.Run("duplicate username", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "other1234"})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, server.StatusFailure, resp.Status)
		require.Equal(t, "username already exists", resp.ErrorMessage)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, server.RouteRegister, bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		ts.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	_, registered := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})

	t.Run("success issues a fresh token", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteLogin, server.LoginRequest{Username: "alice", Password: "longpass1"})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, server.StatusSuccess, resp.Status)
		require.Equal(t, registered.UserID, resp.UserID)
		require.NotNil(t, resp.SessionToken)
		require.NotEqual(t, *registered.SessionToken, *resp.SessionToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteLogin, server.LoginRequest{Username: "nobody", Password: "longpass1"})
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "user does not exist", resp.ErrorMessage)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteLogin, server.LoginRequest{Username: "alice", Password: "wrongpass1"})
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "invalid password", resp.ErrorMessage)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	_, registered := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})
	_, login := ts.post(t, server.RouteLogin, server.LoginRequest{Username: "alice", Password: "longpass1"})

	t.Run("stale token rejected", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteLogout, server.LogoutRequest{
			UserID:       registered.UserID,
			SessionToken: *registered.SessionToken,
		})
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "invalid session token", resp.ErrorMessage)
	})

	t.Run("active token succeeds with no token in the response", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteLogout, server.LogoutRequest{
			UserID:       login.UserID,
			SessionToken: *login.SessionToken,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, server.StatusSuccess, resp.Status)
		require.Equal(t, login.UserID, resp.UserID)
		require.Nil(t, resp.SessionToken)
	})

	t.Run("repeat logout rejected", func(t *testing.T) {
		status, _ := ts.post(t, server.RouteLogout, server.LogoutRequest{
			UserID:       login.UserID,
			SessionToken: *login.SessionToken,
		})
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestValidateSessionEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	_, registered := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})

	t.Run("active session", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteSessionValidate, server.ValidateSessionRequest{
			UserID:       registered.UserID,
			SessionToken: *registered.SessionToken,
		})
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, server.StatusSuccess, resp.Status)
		require.Equal(t, registered.UserID, resp.UserID)
	})

	t.Run("wrong token", func(t *testing.T) {
		status, resp := ts.post(t, server.RouteSessionValidate, server.ValidateSessionRequest{
			UserID:       registered.UserID,
			SessionToken: "not-the-token",
		})
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, server.StatusFailure, resp.Status)
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	// Drive one request through the middleware so the counters exist
	ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})

	req := httptest.NewRequest(http.MethodGet, server.RouteMetrics, nil)
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "login_http_requests_total")
}

func TestCorsHeaders(t *testing.T) {
	ts := setupTestServer(t)

	payload, err := json.Marshal(server.LoginRequest{Username: "alice", Password: "longpass1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, server.RouteLogin, bytes.NewReader(payload))
	req.Header.Set("Origin", "https://reports.example.com")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStorageFailureAnswers500(t *testing.T) {
	ts := setupTestServer(t)
	ts.store.PutErr = errors.New("disk full")

	status, resp := ts.post(t, server.RouteRegister, server.RegisterRequest{Username: "alice", Password: "longpass1"})
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, server.StatusFailure, resp.Status)
	require.Equal(t, "storage failure", resp.ErrorMessage)
}
