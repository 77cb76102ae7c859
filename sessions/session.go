// Package sessions manages session tokens. A token is an opaque, unguessable
// identifier bound to exactly one Identity Record at a time; the record is the
// only place a token lives, so issuing, validating, and revoking are all
// expressed as Credential Store operations.
package sessions

import (
	"crypto/subtle"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-login-service/internal/utils"
	"github.com/jrsteele09/go-login-service/users"
)

// NewToken generates a fresh session token: a random 128-bit UUID, giving a
// negligible collision probability across the service lifetime.
func NewToken() string {
	return uuid.New().String()
}

// Manager issues, validates, and revokes the session token embedded in an
// Identity Record. Manager does not serialize read-modify-write cycles; the
// caller owns that (see auth.AuthService).
type Manager struct {
	store users.Store
}

// NewManager initializes a Manager bound to a Credential Store.
func NewManager(store users.Store) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}
	return &Manager{store: store}, nil
}

// Issue generates a fresh token, sets it on the record, and persists it.
// Any previously active token on the record becomes unusable.
func (m *Manager) Issue(user *users.User) (string, error) {
	token := NewToken()
	user.SessionToken = utils.Ptr(token)
	if err := m.store.Put(user.Username, user); err != nil {
		return "", errors.Wrap(err, "[Manager.Issue] persisting record")
	}
	return token, nil
}

// Validate locates the record whose UserID matches and reports whether its
// active session token equals the supplied one. ok is false when no record
// matches, the record has no open session, or the tokens differ; err is
// reserved for storage failures.
func (m *Manager) Validate(userID, token string) (user *users.User, ok bool, err error) {
	user, err = m.findByUserID(userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil || !user.HasSession() {
		return nil, false, nil
	}
	if subtle.ConstantTimeCompare([]byte(utils.Value(user.SessionToken)), []byte(token)) != 1 {
		return nil, false, nil
	}
	return user, true, nil
}

// Revoke validates (userID, token) and, on success, clears the record's token
// and persists it. ok mirrors Validate.
func (m *Manager) Revoke(userID, token string) (user *users.User, ok bool, err error) {
	user, ok, err = m.Validate(userID, token)
	if err != nil || !ok {
		return nil, ok, err
	}
	user.SessionToken = nil
	if err := m.store.Put(user.Username, user); err != nil {
		return nil, false, errors.Wrap(err, "[Manager.Revoke] persisting record")
	}
	return user, true, nil
}

func (m *Manager) findByUserID(userID string) (*users.User, error) {
	snapshot, err := m.store.Snapshot()
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.findByUserID] snapshot")
	}
	for _, user := range snapshot {
		if user.UserID == userID {
			return user, nil
		}
	}
	return nil, nil
}
