package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type DisableTwoFactorCommand struct {
	AccountID uint
	Password  string
	Code      string
}

type DisableTwoFactorUseCase struct {
	accountRepo    account.Repository
	passwordHasher account.PasswordHasher
	totpProvider   TOTPProvider
	logger         logger.Interface
}

func NewDisableTwoFactorUseCase(
	accountRepo account.Repository,
	hasher account.PasswordHasher,
	totpProvider TOTPProvider,
	logger logger.Interface,
) *DisableTwoFactorUseCase {
	return &DisableTwoFactorUseCase{
		accountRepo:    accountRepo,
		passwordHasher: hasher,
		totpProvider:   totpProvider,
		logger:         logger,
	}
}

// Execute turns the second factor off. Both proofs are required: the
// password and a current code, so neither a stolen password nor a stolen
// device is enough on its own.
func (uc *DisableTwoFactorUseCase) Execute(ctx context.Context, cmd DisableTwoFactorCommand) error {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return errors.NewNotFoundError("Account not found")
	}

	if !acct.TwoFactorEnabled() {
		return errors.NewBadRequestError("Two-factor authentication is not enabled")
	}

	if !acct.VerifyPassword(cmd.Password, uc.passwordHasher) {
		return errors.NewInvalidCredentialsError()
	}

	secret := acct.TwoFactorSecret()
	if secret == nil || !uc.totpProvider.Validate(cmd.Code, *secret) {
		return errors.NewInvalidTwoFactorError()
	}

	if err := acct.DisableTwoFactor(); err != nil {
		if stderrors.Is(err, account.ErrTwoFactorNotEnabled) {
			return errors.NewBadRequestError("Two-factor authentication is not enabled")
		}
		return fmt.Errorf("failed to disable two-factor authentication: %w", err)
	}

	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	uc.logger.Infow("two-factor authentication disabled", "account_id", acct.ID())
	return nil
}
