// Package hasher provides one-way password digest schemes behind a single
// interface, so the authentication flow never depends on a specific scheme.
package hasher

import (
	"fmt"
)

// Hasher turns a plaintext secret into a comparable digest with no
// recoverable inverse.
type Hasher interface {
	// Digest computes the stored form of password.
	Digest(password string) (string, error)

	// Compare reports whether password matches a previously stored digest.
	Compare(password, digest string) bool
}

// Supported scheme names for FromScheme.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// FromScheme returns the hasher for a configured scheme name.
func FromScheme(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeSHA256:
		return NewSHA256Hasher(), nil
	case SchemeBcrypt:
		return NewBcryptHasher(), nil
	}
	return nil, fmt.Errorf("[hasher.FromScheme] unknown hash scheme %q", scheme)
}
