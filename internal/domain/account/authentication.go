package account

import (
	"fmt"
	"time"

	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/shared/biztime"
)

// PasswordHasher abstracts the password hashing algorithm.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SetPassword hashes and stores a new password for the account.
func (a *Account) SetPassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}
	if hasher == nil {
		return fmt.Errorf("password hasher cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	a.passwordHash = &hash
	a.touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
// Accounts without a password never verify.
func (a *Account) VerifyPassword(password string, hasher PasswordHasher) bool {
	if a.passwordHash == nil || hasher == nil {
		return false
	}
	return hasher.Verify(password, *a.passwordHash)
}

// HasPassword reports whether the account has a password set
func (a *Account) HasPassword() bool {
	return a.passwordHash != nil
}

// GeneratePasswordResetToken mints a single-use reset token valid for the
// given TTL. Only the hash is retained on the aggregate; the plaintext
// value must go out by email and is never stored. Issuing a new token
// supersedes any outstanding one.
func (a *Account) GeneratePasswordResetToken(ttl time.Duration) (*vo.Token, error) {
	token, err := vo.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	hash := token.Hash()
	expiresAt := biztime.NowUTC().Add(ttl)

	a.passwordResetToken = &hash
	a.passwordResetExpiresAt = &expiresAt
	a.touch()

	return token, nil
}

// ResetPassword validates the presented reset token, sets the new password
// and clears the token in the same operation so it can never be replayed.
// A successful reset also bumps the token epoch: every session that existed
// before the reset stops working.
func (a *Account) ResetPassword(plainToken string, newPassword *vo.Password, hasher PasswordHasher) error {
	if a.passwordResetToken == nil {
		return ErrNoResetToken
	}
	if a.passwordResetExpiresAt == nil || biztime.NowUTC().After(*a.passwordResetExpiresAt) {
		return ErrResetTokenExpired
	}

	presented, err := vo.NewTokenFromValue(plainToken)
	if err != nil {
		return ErrResetTokenMismatch
	}
	if presented.Hash() != *a.passwordResetToken {
		return ErrResetTokenMismatch
	}

	if err := a.SetPassword(newPassword, hasher); err != nil {
		return err
	}

	a.passwordResetToken = nil
	a.passwordResetExpiresAt = nil
	a.tokenVersion++
	a.touch()
	return nil
}

// ClearPasswordResetToken discards any outstanding reset token.
func (a *Account) ClearPasswordResetToken() {
	if a.passwordResetToken == nil && a.passwordResetExpiresAt == nil {
		return
	}
	a.passwordResetToken = nil
	a.passwordResetExpiresAt = nil
	a.touch()
}

// HasActiveResetToken reports whether an unexpired reset token is on record.
func (a *Account) HasActiveResetToken() bool {
	if a.passwordResetToken == nil || a.passwordResetExpiresAt == nil {
		return false
	}
	return biztime.NowUTC().Before(*a.passwordResetExpiresAt)
}
