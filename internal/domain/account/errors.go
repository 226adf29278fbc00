package account

import "errors"

var (
	// ErrTwoFactorNotProvisioned is returned when a confirm is attempted
	// before any secret has been provisioned.
	ErrTwoFactorNotProvisioned = errors.New("two-factor secret has not been provisioned")

	// ErrTwoFactorAlreadyEnabled is returned when enabling or re-provisioning
	// an already enabled second factor.
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication is already enabled")

	// ErrTwoFactorNotEnabled is returned when disabling a second factor that
	// was never enabled.
	ErrTwoFactorNotEnabled = errors.New("two-factor authentication is not enabled")

	// ErrNoPendingEmail is returned when confirming an email change without
	// a pending address on record.
	ErrNoPendingEmail = errors.New("no pending email change on record")

	// ErrNoResetToken is returned when resetting a password without an
	// outstanding reset token.
	ErrNoResetToken = errors.New("no password reset token found")

	// ErrResetTokenExpired is returned when the reset token's expiry passed.
	ErrResetTokenExpired = errors.New("password reset token has expired")

	// ErrResetTokenMismatch is returned when the presented token does not
	// match the stored hash.
	ErrResetTokenMismatch = errors.New("invalid password reset token")
)
