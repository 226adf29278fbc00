package account

import (
	"fmt"
	"time"

	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/shared/authorization"
	"github.com/aula-lms/aula/internal/shared/biztime"
)

// Account is the identity aggregate root (pure domain model without
// persistence concerns). It owns every credential-bearing field: the
// password hash, the token-version epoch counter, the second-factor
// secret and the password-reset token.
type Account struct {
	id            uint
	sid           string
	email         *vo.Email
	pendingEmail  *vo.Email
	role          authorization.Role
	passwordHash  *string
	emailVerified bool
	tokenVersion  int

	twoFactorSecret  *string
	twoFactorEnabled bool

	passwordResetToken     *string
	passwordResetExpiresAt *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int
}

// ShortIDGenerator produces external account identifiers.
type ShortIDGenerator func() (string, error)

// NewAccount creates a new account aggregate with initial values.
// New accounts start unverified, with the guest role and token version 0.
func NewAccount(email *vo.Email, gen ShortIDGenerator) (*Account, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if gen == nil {
		return nil, fmt.Errorf("short ID generator is required")
	}

	sid, err := gen()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account ID: %w", err)
	}

	now := biztime.NowUTC()
	return &Account{
		sid:          sid,
		email:        email,
		role:         authorization.RoleGuest,
		tokenVersion: 0,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// AuthData carries the credential fields for reconstruction from persistence.
type AuthData struct {
	PasswordHash           *string
	EmailVerified          bool
	PendingEmail           *vo.Email
	TokenVersion           int
	TwoFactorSecret        *string
	TwoFactorEnabled       bool
	PasswordResetToken     *string
	PasswordResetExpiresAt *time.Time
}

// ReconstructAccount reconstructs an account from persistence.
func ReconstructAccount(
	id uint,
	sid string,
	email *vo.Email,
	role authorization.Role,
	createdAt, updatedAt time.Time,
	version int,
	authData *AuthData,
) (*Account, error) {
	if id == 0 {
		return nil, fmt.Errorf("account ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("account SID is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	a := &Account{
		id:        id,
		sid:       sid,
		email:     email,
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}

	if authData != nil {
		a.passwordHash = authData.PasswordHash
		a.emailVerified = authData.EmailVerified
		a.pendingEmail = authData.PendingEmail
		a.tokenVersion = authData.TokenVersion
		a.twoFactorSecret = authData.TwoFactorSecret
		a.twoFactorEnabled = authData.TwoFactorEnabled
		a.passwordResetToken = authData.PasswordResetToken
		a.passwordResetExpiresAt = authData.PasswordResetExpiresAt
	}

	return a, nil
}

// GetAuthData returns the credential fields for persistence.
func (a *Account) GetAuthData() *AuthData {
	return &AuthData{
		PasswordHash:           a.passwordHash,
		EmailVerified:          a.emailVerified,
		PendingEmail:           a.pendingEmail,
		TokenVersion:           a.tokenVersion,
		TwoFactorSecret:        a.twoFactorSecret,
		TwoFactorEnabled:       a.twoFactorEnabled,
		PasswordResetToken:     a.passwordResetToken,
		PasswordResetExpiresAt: a.passwordResetExpiresAt,
	}
}

// ID returns the internal account ID
func (a *Account) ID() uint {
	return a.id
}

// SID returns the external account identifier embedded in tokens
func (a *Account) SID() string {
	return a.sid
}

// Email returns the account's email
func (a *Account) Email() *vo.Email {
	return a.email
}

// PendingEmail returns the address of an in-flight email change, if any
func (a *Account) PendingEmail() *vo.Email {
	return a.pendingEmail
}

// Role returns the account's role
func (a *Account) Role() authorization.Role {
	return a.role
}

// TokenVersion returns the current token epoch. Every minted token
// snapshots this value; bumping it revokes everything minted before.
func (a *Account) TokenVersion() int {
	return a.tokenVersion
}

// CreatedAt returns when the account was created
func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns when the account was last updated
func (a *Account) UpdatedAt() time.Time {
	return a.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (a *Account) Version() int {
	return a.version
}

// SetID sets the internal account ID (only for persistence layer use)
func (a *Account) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("account ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("account ID cannot be zero")
	}
	a.id = id
	return nil
}

// AssignRole changes the account's role.
func (a *Account) AssignRole(role authorization.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role: %s", role)
	}
	if a.role == role {
		return nil
	}
	a.role = role
	a.touch()
	return nil
}

// BumpTokenVersion increments the token epoch, invalidating every token
// minted before the bump. The counter only ever increases.
func (a *Account) BumpTokenVersion() {
	a.tokenVersion++
	a.touch()
}

// RequestEmailChange records the target address of an email migration.
// The change only takes effect once ConfirmEmailChange is called.
func (a *Account) RequestEmailChange(newEmail *vo.Email) error {
	if newEmail == nil {
		return fmt.Errorf("new email cannot be nil")
	}
	if a.email.Equals(newEmail) {
		return fmt.Errorf("new email is identical to the current address")
	}
	a.pendingEmail = newEmail
	a.touch()
	return nil
}

// ConfirmEmailChange swaps in the pending address, clears it and marks the
// account verified (possession of the confirmation code proves control of
// the new mailbox). The credential identity changed, so the token epoch is
// bumped as well.
func (a *Account) ConfirmEmailChange() error {
	if a.pendingEmail == nil {
		return ErrNoPendingEmail
	}
	a.email = a.pendingEmail
	a.pendingEmail = nil
	a.emailVerified = true
	a.tokenVersion++
	a.touch()
	return nil
}

// MarkEmailVerified flips the verification flag. Verifying an already
// verified account is a no-op, not an error.
func (a *Account) MarkEmailVerified() {
	if a.emailVerified {
		return
	}
	a.emailVerified = true
	a.touch()
}

// IsEmailVerified reports whether the email has been verified
func (a *Account) IsEmailVerified() bool {
	return a.emailVerified
}

func (a *Account) touch() {
	a.updatedAt = biztime.NowUTC()
	a.version++
}

// DisplayInfo represents account information for display purposes
type DisplayInfo struct {
	SID              string    `json:"id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	EmailVerified    bool      `json:"email_verified"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
}

// GetDisplayInfo returns formatted display information
func (a *Account) GetDisplayInfo() DisplayInfo {
	return DisplayInfo{
		SID:              a.sid,
		Email:            a.email.String(),
		Role:             a.role.String(),
		EmailVerified:    a.emailVerified,
		TwoFactorEnabled: a.twoFactorEnabled,
		CreatedAt:        a.createdAt,
	}
}
