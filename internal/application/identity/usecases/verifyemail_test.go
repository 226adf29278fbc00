package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// liveCode reconstructs a stored, unexpired code for an account.
func liveCode(accountID uint, kind verification.Kind, digits, metadata string) *verification.Code {
	now := time.Now().UTC()
	return verification.ReconstructCode(1, accountID, kind, digits, metadata, now.Add(15*time.Minute), now.Add(-10*time.Minute), now.Add(-10*time.Minute))
}

func TestVerifyEmailUseCase_Success(t *testing.T) {
	acct := buildAccount(t, "student@example.edu", accountFixture{password: "password1"})

	var updated *account.Account
	accountRepo := &mockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email *vo.Email) (*account.Account, error) {
			return acct, nil
		},
		UpdateFunc: func(ctx context.Context, a *account.Account) error {
			updated = a
			return nil
		},
	}
	deleted := false
	codeRepo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
			return liveCode(accountID, kind, "123456", ""), nil
		},
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) error {
			deleted = true
			return nil
		},
	}

	uc := NewVerifyEmailUseCase(accountRepo, buildRegistry(codeRepo), logger.NewNop())
	err := uc.Execute(context.Background(), VerifyEmailCommand{Email: "student@example.edu", Code: "123456"})

	require.NoError(t, err)
	require.Same(t, acct, updated)
	assert.True(t, acct.IsEmailVerified())
	assert.True(t, deleted, "the code is single use")
}

func TestVerifyEmailUseCase_AlreadyVerifiedIsIdempotent(t *testing.T) {
	acct := buildAccount(t, "student@example.edu", accountFixture{password: "password1", emailVerified: true})

	updated := false
	accountRepo := &mockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email *vo.Email) (*account.Account, error) {
			return acct, nil
		},
		UpdateFunc: func(ctx context.Context, a *account.Account) error {
			updated = true
			return nil
		},
	}
	revoked := false
	codeRepo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
			return liveCode(accountID, kind, "123456", ""), nil
		},
		DeleteByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) error {
			assert.Equal(t, verification.KindEmailVerification, kind)
			revoked = true
			return nil
		},
	}

	uc := NewVerifyEmailUseCase(accountRepo, buildRegistry(codeRepo), logger.NewNop())

	// Any code, even a wrong or absent one, succeeds once the address is
	// already proven.
	for _, code := range []string{"123456", "654321", ""} {
		err := uc.Execute(context.Background(), VerifyEmailCommand{Email: "student@example.edu", Code: code})
		assert.NoError(t, err)
	}

	assert.True(t, revoked, "an outstanding code must not linger once the address is proven")
	assert.False(t, updated, "nothing about the account changes")
}

func TestVerifyEmailUseCase_UnknownAddressReadsLikeWrongCode(t *testing.T) {
	// An unknown address and a wrong code must be indistinguishable so the
	// endpoint cannot be used to probe for registered emails.
	acct := buildAccount(t, "student@example.edu", accountFixture{password: "password1"})

	unknownRepo := &mockAccountRepository{}
	knownRepo := &mockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email *vo.Email) (*account.Account, error) {
			return acct, nil
		},
	}
	codeRepo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
			return liveCode(accountID, kind, "123456", ""), nil
		},
	}

	ucUnknown := NewVerifyEmailUseCase(unknownRepo, buildRegistry(codeRepo), logger.NewNop())
	errUnknown := ucUnknown.Execute(context.Background(), VerifyEmailCommand{Email: "ghost@example.edu", Code: "123456"})

	ucKnown := NewVerifyEmailUseCase(knownRepo, buildRegistry(codeRepo), logger.NewNop())
	errWrongCode := ucKnown.Execute(context.Background(), VerifyEmailCommand{Email: "student@example.edu", Code: "654321"})

	require.Error(t, errUnknown)
	require.Error(t, errWrongCode)
	assert.Equal(t, errUnknown.Error(), errWrongCode.Error())
}

func TestVerifyEmailUseCase_ExpiredCode(t *testing.T) {
	acct := buildAccount(t, "student@example.edu", accountFixture{password: "password1"})
	accountRepo := &mockAccountRepository{
		GetByEmailFunc: func(ctx context.Context, email *vo.Email) (*account.Account, error) {
			return acct, nil
		},
	}
	codeRepo := &mockCodeRepository{
		GetByAccountAndKindFunc: func(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
			now := time.Now().UTC()
			return verification.ReconstructCode(1, accountID, kind, "123456", "", now.Add(-time.Minute), now.Add(-20*time.Minute), now.Add(-20*time.Minute)), nil
		},
	}

	uc := NewVerifyEmailUseCase(accountRepo, buildRegistry(codeRepo), logger.NewNop())
	err := uc.Execute(context.Background(), VerifyEmailCommand{Email: "student@example.edu", Code: "123456"})

	require.Error(t, err)
	authErr := errors.GetAuthError(err)
	require.NotNil(t, authErr)
	assert.Equal(t, errors.ErrorTypeInvalidOrExpired, authErr.Type)
	assert.False(t, acct.IsEmailVerified())
}

func TestVerifyEmailUseCase_MalformedEmail(t *testing.T) {
	uc := NewVerifyEmailUseCase(&mockAccountRepository{}, buildRegistry(&mockCodeRepository{}), logger.NewNop())
	err := uc.Execute(context.Background(), VerifyEmailCommand{Email: "nope", Code: "123456"})
	assert.True(t, errors.IsValidationError(err))
}
