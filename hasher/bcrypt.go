package hasher

import (
	"golang.org/x/crypto/bcrypt"
)

var _ Hasher = (*BcryptHasher)(nil)

// BcryptHasher digests passwords with salted bcrypt. Unlike SHA256Hasher its
// output differs per call, so comparison goes through bcrypt rather than
// string equality.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Digest(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Compare(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
