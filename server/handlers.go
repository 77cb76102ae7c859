package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-login-service/auth"
)

// LoginHandler authenticates a username/password pair and returns a fresh
// session token. Business failures answer 401, so callers can't distinguish
// an unknown username from a wrong password by status code alone.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := s.auth.Login(req.Username, req.Password)
		if err != nil {
			s.writeFailure(w, r, err, http.StatusUnauthorized)
			return
		}

		writeResponse(w, http.StatusOK, AuthorizationResponse{
			Status:       StatusSuccess,
			UserID:       result.UserID,
			SessionToken: result.SessionToken,
		})
	}
}

// RegisterHandler creates an account and implicitly opens its first session.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := s.auth.Register(req.Username, req.Password)
		if err != nil {
			s.writeFailure(w, r, err, http.StatusBadRequest)
			return
		}

		writeResponse(w, http.StatusOK, AuthorizationResponse{
			Status:       StatusSuccess,
			UserID:       result.UserID,
			SessionToken: result.SessionToken,
		})
	}
}

// LogoutHandler invalidates the active session named by (user_id, session_token).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LogoutRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := s.auth.Logout(req.UserID, req.SessionToken)
		if err != nil {
			s.writeFailure(w, r, err, http.StatusBadRequest)
			return
		}

		writeResponse(w, http.StatusOK, AuthorizationResponse{
			Status: StatusSuccess,
			UserID: result.UserID,
		})
	}
}

// ValidateSessionHandler lets collaborating services check whether a
// (user_id, session_token) pair names the currently active session.
func (s *Server) ValidateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ValidateSessionRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		result, err := s.auth.ValidateSession(req.UserID, req.SessionToken)
		if err != nil {
			s.writeFailure(w, r, err, http.StatusUnauthorized)
			return
		}

		writeResponse(w, http.StatusOK, AuthorizationResponse{
			Status: StatusSuccess,
			UserID: result.UserID,
		})
	}
}

// HealthHandler reports service liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// decodeRequest parses the JSON body into dst, answering a 400 failure body
// itself when the payload is malformed.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeResponse(w, http.StatusBadRequest, AuthorizationResponse{
			Status:       StatusFailure,
			ErrorMessage: "invalid request body",
		})
		return false
	}
	return true
}

// writeFailure maps a service error onto the wire. Business-rule failures use
// the handler's failure status and expose the sentinel message; anything else
// is a storage fault, logged and answered as a 500 without internal detail.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error, businessStatus int) {
	if isBusinessFailure(err) {
		writeResponse(w, businessStatus, AuthorizationResponse{
			Status:       StatusFailure,
			ErrorMessage: err.Error(),
		})
		return
	}

	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed at the persistence boundary")
	writeResponse(w, http.StatusInternalServerError, AuthorizationResponse{
		Status:       StatusFailure,
		ErrorMessage: "storage failure",
	})
}

func isBusinessFailure(err error) bool {
	for _, sentinel := range []error{
		auth.ErrUsernameTaken,
		auth.ErrInvalidPassword,
		auth.ErrUserNotFound,
		auth.ErrInvalidCredentials,
		auth.ErrInvalidSession,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func writeResponse(w http.ResponseWriter, status int, resp AuthorizationResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
