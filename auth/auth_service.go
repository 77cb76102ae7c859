// Package auth orchestrates login, registration, and logout against the
// Credential Store, the password hasher, and the session manager.
package auth

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-login-service/hasher"
	"github.com/jrsteele09/go-login-service/sessions"
	"github.com/jrsteele09/go-login-service/users"
)

// Result is the success payload of an authentication operation.
// SessionToken is nil after logout.
type Result struct {
	UserID       string
	SessionToken *string
}

// AuthService enforces account and session policy. Each account moves between
// no-session and has-session: login and register enter has-session (a login on
// an already open session silently replaces the token), logout exits it.
type AuthService struct {
	store      users.Store
	passwords  hasher.Hasher
	sessionMgr *sessions.Manager
	mu         sync.Mutex // serializes every read-modify-write cycle over the store
}

// NewAuthService initializes an AuthService with required dependencies.
func NewAuthService(store users.Store, passwords hasher.Hasher, sessionMgr *sessions.Manager) (*AuthService, error) {
	if store == nil {
		return nil, errors.New("[NewAuthService] store is required")
	}
	if passwords == nil {
		return nil, errors.New("[NewAuthService] hasher is required")
	}
	if sessionMgr == nil {
		return nil, errors.New("[NewAuthService] session manager is required")
	}
	return &AuthService{
		store:      store,
		passwords:  passwords,
		sessionMgr: sessionMgr,
	}, nil
}

// Register creates a new account and implicitly opens a session for it.
// Fails with ErrUsernameTaken or ErrInvalidPassword; no partial record is
// observable after a failure.
func (as *AuthService) Register(username, password string) (*Result, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	taken, err := as.store.Exists(username)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Register] store.Exists")
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if err := ValidatePasswordPolicy(password); err != nil {
		return nil, err
	}

	digest, err := as.passwords.Digest(password)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Register] hashing password")
	}

	userID, err := as.nextUserID()
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Register] allocating user id")
	}

	user := &users.User{
		UserID:         userID,
		Username:       username,
		PasswordDigest: digest,
	}

	// Issue persists the new record along with its first session token, so a
	// failure here leaves no record behind.
	token, err := as.sessionMgr.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Register] issuing session")
	}

	return &Result{UserID: userID, SessionToken: &token}, nil
}

// Login verifies credentials and opens a fresh session, replacing any token
// the record already carried. Fails with ErrUserNotFound or
// ErrInvalidCredentials.
func (as *AuthService) Login(username, password string) (*Result, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	user, err := as.store.Get(username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "[AuthService.Login] store.Get")
	}

	if !as.passwords.Compare(password, user.PasswordDigest) {
		return nil, ErrInvalidCredentials
	}

	token, err := as.sessionMgr.Issue(user)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Login] issuing session")
	}

	return &Result{UserID: user.UserID, SessionToken: &token}, nil
}

// Logout closes the session identified by (userID, sessionToken). Fails with
// ErrInvalidSession when no record matches the user id, the stored token
// differs, or the session was already closed.
func (as *AuthService) Logout(userID, sessionToken string) (*Result, error) {
	as.mu.Lock()
	defer as.mu.Unlock()

	user, ok, err := as.sessionMgr.Revoke(userID, sessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.Logout] revoking session")
	}
	if !ok {
		return nil, ErrInvalidSession
	}

	return &Result{UserID: user.UserID, SessionToken: nil}, nil
}

// ValidateSession reports whether (userID, sessionToken) names the currently
// active session for that account. Pure read: it takes no part in the
// mutation lock.
func (as *AuthService) ValidateSession(userID, sessionToken string) (*Result, error) {
	user, ok, err := as.sessionMgr.Validate(userID, sessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "[AuthService.ValidateSession] validating session")
	}
	if !ok {
		return nil, ErrInvalidSession
	}
	return &Result{UserID: user.UserID, SessionToken: user.SessionToken}, nil
}

// nextUserID allocates the next "u"-prefixed zero-padded ordinal. It scans
// for the highest existing ordinal rather than counting records, so ids stay
// unique even if the numbering ever gets holes. Callers must hold as.mu.
func (as *AuthService) nextUserID() (string, error) {
	snapshot, err := as.store.Snapshot()
	if err != nil {
		return "", err
	}

	highest := 0
	for _, user := range snapshot {
		var n int
		if _, err := fmt.Sscanf(user.UserID, "u%d", &n); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("u%03d", highest+1), nil
}
