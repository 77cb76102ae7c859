package auth

import "errors"

// Business-rule failures. These are recovered at the service boundary and
// surfaced as structured failure responses, never as faults. Messages are the
// caller-visible error_message strings.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidPassword    = errors.New("password must be between 8 and 12 characters long")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidSession     = errors.New("invalid session token")
)
