package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeInvalidOrExpired   ErrorType = "invalid_or_expired"
	ErrorTypeStaleToken         ErrorType = "stale_token"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypeTwoFactorRequired  ErrorType = "two_factor_required"
	ErrorTypeInvalidTwoFactor   ErrorType = "invalid_two_factor_token"
	ErrorTypeSessionExpired     ErrorType = "session_expired"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged
	// Some auth errors (like invalid credentials) may be expected and don't need error-level logging
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message never reveals whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false, // Expected error, don't clutter logs
		SecurityEvent: true,  // Track for brute force detection
	}
}

// NewInvalidOrExpiredError covers verification codes, reset tokens and
// anything else handed to the user out of band that no longer matches.
func NewInvalidOrExpiredError(subject string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidOrExpired,
			Message: "Invalid or expired " + subject,
			Code:    http.StatusBadRequest,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewStaleTokenError signals that a token's embedded token version no longer
// matches the account's current one, i.e. it was revoked by a logout-all.
func NewStaleTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeStaleToken,
			Message: "Token has been revoked",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false, // Normal after logout-all
		SecurityEvent: false,
	}
}

// NewTokenInvalidError creates an error for invalid or tampered tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid " + tokenType,
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog:     true, // May indicate tampering
		SecurityEvent: true,
	}
}

// NewTwoFactorRequiredError is a distinguished login outcome, not a failure:
// the password checked out but a TOTP code must be submitted.
func NewTwoFactorRequiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTwoFactorRequired,
			Message: "Two-factor authentication code required",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewInvalidTwoFactorError creates an error for a rejected TOTP code.
func NewInvalidTwoFactorError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidTwoFactor,
			Message: "Invalid two-factor authentication code",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewSessionExpiredError creates an error for expired sessions
func NewSessionExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionExpired,
			Message: "Session has expired",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false, // Normal expiration
		SecurityEvent: false,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// IsTwoFactorRequired reports whether err is the distinguished
// second-factor-required login outcome.
func IsTwoFactorRequired(err error) bool {
	authErr := GetAuthError(err)
	return authErr != nil && authErr.Type == ErrorTypeTwoFactorRequired
}

// IsStaleToken reports whether err is a token-version mismatch.
func IsStaleToken(err error) bool {
	authErr := GetAuthError(err)
	return authErr != nil && authErr.Type == ErrorTypeStaleToken
}

// ShouldLogAuthError returns true if the authentication error should be logged
// This helps reduce noise in logs from expected auth failures
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true // Default to logging if not an AuthError
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
