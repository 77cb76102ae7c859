package users

import "errors"

var (
	// ErrNotFound is returned by Get when no record exists for a username.
	ErrNotFound = errors.New("user not found")

	// ErrStorage marks failures at the persistence boundary. A mutation that
	// surfaces ErrStorage cannot be guaranteed durable and must fail the
	// triggering request.
	ErrStorage = errors.New("storage failure")
)

// Store is the Credential Store: a durable collection of Identity Records
// keyed by username. Every mutation replaces the persisted collection as a
// whole, so a single Put is atomic from the caller's point of view.
//
// Store implementations keep individual operations internally consistent, but
// a read-modify-write cycle spanning several calls is only safe when the
// caller serializes it (see auth.AuthService).
type Store interface {
	// Get returns the record for username, or ErrNotFound.
	Get(username string) (*User, error)

	// Put creates or replaces the record for username.
	Put(username string, user *User) error

	// Exists reports whether a record exists for username.
	Exists(username string) (bool, error)

	// Snapshot returns a copy of every record keyed by username.
	Snapshot() (map[string]*User, error)
}
