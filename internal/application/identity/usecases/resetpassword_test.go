package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// accountWithResetToken builds an account holding the hash of the returned
// plaintext token.
func accountWithResetToken(t *testing.T, ttl time.Duration) (*account.Account, string) {
	t.Helper()
	token, err := vo.GenerateToken()
	require.NoError(t, err)

	expires := time.Now().UTC().Add(ttl)
	acct := buildAccount(t, "student@example.edu", accountFixture{
		password:       "oldpassword1",
		emailVerified:  true,
		tokenVersion:   1,
		resetTokenHash: token.Hash(),
		resetExpiresAt: &expires,
	})
	return acct, token.Value()
}

func TestResetPasswordUseCase_Success(t *testing.T) {
	acct, plainToken := accountWithResetToken(t, time.Hour)

	var updateOrder []string
	accountRepo := &mockAccountRepository{
		GetByPasswordResetTokenFunc: func(ctx context.Context, tokenHash string) (*account.Account, error) {
			return acct, nil
		},
		UpdateFunc: func(ctx context.Context, a *account.Account) error {
			updateOrder = append(updateOrder, "account")
			return nil
		},
	}
	sessionRepo := &mockSessionRepository{
		DeleteByAccountIDFunc: func(ctx context.Context, accountID uint) error {
			updateOrder = append(updateOrder, "sessions")
			return nil
		},
	}
	notified := false
	emailService := &mockEmailService{
		SendPasswordChangedFunc: func(to string) error {
			notified = true
			return nil
		},
	}

	uc := NewResetPasswordUseCase(accountRepo, sessionRepo, &mockPasswordHasher{}, emailService, logger.NewNop())
	err := uc.Execute(context.Background(), ResetPasswordCommand{Token: plainToken, NewPassword: "newpassword1"})

	require.NoError(t, err)
	assert.True(t, acct.VerifyPassword("newpassword1", &mockPasswordHasher{}))
	assert.Equal(t, 2, acct.TokenVersion(), "a reset revokes every outstanding token")
	assert.False(t, acct.HasActiveResetToken())
	assert.True(t, notified)

	// The bumped epoch must land before the session rows go away, so
	// outstanding tokens are stale even if the cleanup fails.
	assert.Equal(t, []string{"account", "sessions"}, updateOrder)
}

func TestResetPasswordUseCase_UnknownToken(t *testing.T) {
	token, err := vo.GenerateToken()
	require.NoError(t, err)

	uc := NewResetPasswordUseCase(&mockAccountRepository{}, &mockSessionRepository{}, &mockPasswordHasher{}, &mockEmailService{}, logger.NewNop())
	err = uc.Execute(context.Background(), ResetPasswordCommand{Token: token.Value(), NewPassword: "newpassword1"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidOrExpired, authErr.Type)
}

func TestResetPasswordUseCase_MalformedToken(t *testing.T) {
	uc := NewResetPasswordUseCase(&mockAccountRepository{}, &mockSessionRepository{}, &mockPasswordHasher{}, &mockEmailService{}, logger.NewNop())
	err := uc.Execute(context.Background(), ResetPasswordCommand{Token: "short", NewPassword: "newpassword1"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidOrExpired, authErr.Type, "a malformed token reads like an unknown one")
}

func TestResetPasswordUseCase_ExpiredToken(t *testing.T) {
	acct, plainToken := accountWithResetToken(t, -time.Minute)
	accountRepo := &mockAccountRepository{
		GetByPasswordResetTokenFunc: func(ctx context.Context, tokenHash string) (*account.Account, error) {
			return acct, nil
		},
	}

	uc := NewResetPasswordUseCase(accountRepo, &mockSessionRepository{}, &mockPasswordHasher{}, &mockEmailService{}, logger.NewNop())
	err := uc.Execute(context.Background(), ResetPasswordCommand{Token: plainToken, NewPassword: "newpassword1"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidOrExpired, authErr.Type)
	assert.True(t, acct.VerifyPassword("oldpassword1", &mockPasswordHasher{}), "the password must not change")
}

func TestResetPasswordUseCase_WeakNewPassword(t *testing.T) {
	_, plainToken := accountWithResetToken(t, time.Hour)

	uc := NewResetPasswordUseCase(&mockAccountRepository{}, &mockSessionRepository{}, &mockPasswordHasher{}, &mockEmailService{}, logger.NewNop())
	err := uc.Execute(context.Background(), ResetPasswordCommand{Token: plainToken, NewPassword: "short"})

	assert.True(t, errors.IsValidationError(err))
}

func TestResetPasswordUseCase_SessionCleanupFailureIsNotFatal(t *testing.T) {
	acct, plainToken := accountWithResetToken(t, time.Hour)
	accountRepo := &mockAccountRepository{
		GetByPasswordResetTokenFunc: func(ctx context.Context, tokenHash string) (*account.Account, error) {
			return acct, nil
		},
	}
	sessionRepo := &mockSessionRepository{
		DeleteByAccountIDFunc: func(ctx context.Context, accountID uint) error {
			return fmt.Errorf("db down")
		},
	}

	uc := NewResetPasswordUseCase(accountRepo, sessionRepo, &mockPasswordHasher{}, &mockEmailService{}, logger.NewNop())
	err := uc.Execute(context.Background(), ResetPasswordCommand{Token: plainToken, NewPassword: "newpassword1"})

	require.NoError(t, err, "the bumped epoch already made the old tokens stale")
}
