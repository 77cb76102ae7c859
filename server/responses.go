package server

// Request and response shapes for the JSON API. Field names are contract.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
}

type ValidateSessionRequest struct {
	UserID       string `json:"user_id"`
	SessionToken string `json:"session_token"`
}

// AuthorizationResponse is the uniform response body of every auth endpoint.
// Status is "success" or "failure"; absent fields are omitted, so a logged-out
// account carries no session_token at all.
type AuthorizationResponse struct {
	Status       string  `json:"status"`
	UserID       string  `json:"user_id,omitempty"`
	SessionToken *string `json:"session_token,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)
