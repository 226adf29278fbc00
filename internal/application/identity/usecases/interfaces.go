package usecases

import "github.com/aula-lms/aula/internal/shared/authorization"

// TokenPair carries a freshly minted access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenClaims is the verified payload of a token.
type TokenClaims struct {
	AccountSID   string
	SessionID    string
	Role         authorization.Role
	TokenVersion int
}

// TokenService mints and verifies the token pair.
type TokenService interface {
	Generate(accountSID, sessionID string, role authorization.Role, tokenVersion int) (*TokenPair, error)
	VerifyRefresh(token string) (*TokenClaims, error)
}

// EmailService sends the transactional mail the identity flows depend on.
type EmailService interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetEmail(to, token string) error
	SendPasswordChangedEmail(to string) error
	SendEmailChangeCode(to, code string) error
	SendEmailChangedNotice(to, newEmail string) error
}

// TOTPProvider provisions and validates time-based one-time codes.
type TOTPProvider interface {
	GenerateSecret(accountEmail string) (secret, otpauthURL string, err error)
	Validate(code, secret string) bool
}
