// Package users defines the Identity Record and the Credential Store contract.
// The store is the single source of truth for account state: session tokens
// live embedded in the record rather than in a separate session table.
package users

type User struct {
	UserID         string  `json:"user_id"`                 // Opaque, stable, assigned at registration, never reused
	Username       string  `json:"username"`                // Unique key, immutable after creation
	PasswordDigest string  `json:"password_digest"`         // Output of the password hasher - never the plaintext
	SessionToken   *string `json:"session_token,omitempty"` // Active session token; nil means no open session
}

// HasSession reports whether the record currently has an open session.
func (u *User) HasSession() bool {
	return u.SessionToken != nil && *u.SessionToken != ""
}

// Clone returns a deep copy so callers can mutate a record without
// aliasing whatever the store handed out.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.SessionToken != nil {
		token := *u.SessionToken
		clone.SessionToken = &token
	}
	return &clone
}
