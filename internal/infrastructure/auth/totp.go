package auth

import (
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/aula-lms/aula/internal/shared/biztime"
)

// TOTPService provisions and validates time-based one-time codes.
type TOTPService struct {
	issuer string
}

func NewTOTPService(issuer string) *TOTPService {
	return &TOTPService{issuer: issuer}
}

// GenerateSecret provisions a new shared secret for the given account
// identity. It returns the base32 secret and the otpauth:// URL that
// authenticator apps consume via QR code.
func (s *TOTPService) GenerateSecret(accountEmail string) (secret, otpauthURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountEmail,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// Validate checks a 6-digit code against the secret, accepting one 30
// second step of clock skew in either direction.
func (s *TOTPService) Validate(code, secret string) bool {
	valid, err := totp.ValidateCustom(code, secret, biztime.NowUTC(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}
