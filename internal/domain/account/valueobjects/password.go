package valueobjects

import (
	"fmt"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// Password represents a plaintext password that passed policy validation.
// It only exists in memory on its way to the hasher.
type Password struct {
	value string
}

// NewPassword creates a Password value object, enforcing the password policy.
func NewPassword(value string) (*Password, error) {
	if len(value) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(value) > maxPasswordLength {
		return nil, fmt.Errorf("password cannot exceed %d characters", maxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return nil, fmt.Errorf("password must contain at least one letter and one digit")
	}

	return &Password{value: value}, nil
}

// String returns the plaintext password value
func (p *Password) String() string {
	return p.value
}
