package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/aula-lms/aula/internal/shared/biztime"
)

// Kind identifies what a verification code proves when consumed.
type Kind string

const (
	KindEmailVerification Kind = "email_verification"
	KindPasswordReset     Kind = "reset_password"
	KindEmailChange       Kind = "email_change"
)

// IsValid reports whether the kind is a known one.
func (k Kind) IsValid() bool {
	switch k {
	case KindEmailVerification, KindPasswordReset, KindEmailChange:
		return true
	}
	return false
}

// Code is a short numeric proof delivered out of band (by email). Codes
// are single use: consumption deletes them. At most one live code exists
// per (account, kind); issuing a new one supersedes the old.
type Code struct {
	id         uint
	accountID  uint
	kind       Kind
	code       string
	metadata   string
	expiresAt  time.Time
	lastSentAt time.Time
	createdAt  time.Time
}

// NewCode mints a fresh 6-digit code for the account with the given TTL.
// Metadata carries kind-specific context (e.g. the target address of an
// email change).
func NewCode(accountID uint, kind Kind, metadata string, ttl time.Duration) (*Code, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID cannot be zero")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid verification kind: %s", kind)
	}

	value, err := generateNumericCode(6)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := biztime.NowUTC()
	return &Code{
		accountID:  accountID,
		kind:       kind,
		code:       value,
		metadata:   metadata,
		expiresAt:  now.Add(ttl),
		lastSentAt: now,
		createdAt:  now,
	}, nil
}

// ReconstructCode rebuilds a code from persistence.
func ReconstructCode(id, accountID uint, kind Kind, code, metadata string, expiresAt, lastSentAt, createdAt time.Time) *Code {
	return &Code{
		id:         id,
		accountID:  accountID,
		kind:       kind,
		code:       code,
		metadata:   metadata,
		expiresAt:  expiresAt,
		lastSentAt: lastSentAt,
		createdAt:  createdAt,
	}
}

// ID returns the internal code ID
func (c *Code) ID() uint {
	return c.id
}

// AccountID returns the owning account's internal ID
func (c *Code) AccountID() uint {
	return c.accountID
}

// Kind returns what the code proves
func (c *Code) Kind() Kind {
	return c.kind
}

// Value returns the code digits
func (c *Code) Value() string {
	return c.code
}

// Metadata returns kind-specific context attached at issue time
func (c *Code) Metadata() string {
	return c.metadata
}

// ExpiresAt returns when the code stops being accepted
func (c *Code) ExpiresAt() time.Time {
	return c.expiresAt
}

// LastSentAt returns when the code was last dispatched
func (c *Code) LastSentAt() time.Time {
	return c.lastSentAt
}

// CreatedAt returns when the code was issued
func (c *Code) CreatedAt() time.Time {
	return c.createdAt
}

// SetID sets the internal ID (only for persistence layer use)
func (c *Code) SetID(id uint) {
	c.id = id
}

// IsExpired reports whether the code's validity window has passed.
func (c *Code) IsExpired() bool {
	return biztime.NowUTC().After(c.expiresAt)
}

// Matches checks the presented digits against the code in constant time.
func (c *Code) Matches(presented string) bool {
	return presented != "" && subtle.ConstantTimeCompare([]byte(c.code), []byte(presented)) == 1
}

// InCooldown reports whether a resend would arrive within the cooldown
// window after the last dispatch.
func (c *Code) InCooldown(cooldown time.Duration) bool {
	return biztime.NowUTC().Before(c.lastSentAt.Add(cooldown))
}

func generateNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
