package auth

import "unicode/utf8"

// Password policy window. Deliberately narrow: both bounds are inclusive and
// both are enforced, including the 12-character ceiling.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 12
)

// ValidatePasswordPolicy checks the registration password policy.
// Length is measured in characters, not bytes.
func ValidatePasswordPolicy(password string) error {
	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength || length > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
