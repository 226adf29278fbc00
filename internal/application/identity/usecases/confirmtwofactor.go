package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type ConfirmTwoFactorCommand struct {
	AccountID uint
	Code      string
}

type ConfirmTwoFactorUseCase struct {
	accountRepo  account.Repository
	totpProvider TOTPProvider
	logger       logger.Interface
}

func NewConfirmTwoFactorUseCase(
	accountRepo account.Repository,
	totpProvider TOTPProvider,
	logger logger.Interface,
) *ConfirmTwoFactorUseCase {
	return &ConfirmTwoFactorUseCase{
		accountRepo:  accountRepo,
		totpProvider: totpProvider,
		logger:       logger,
	}
}

// Execute activates the provisioned secret once the caller proves they
// hold it by submitting a valid current code.
func (uc *ConfirmTwoFactorUseCase) Execute(ctx context.Context, cmd ConfirmTwoFactorCommand) error {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return errors.NewNotFoundError("Account not found")
	}

	secret := acct.TwoFactorSecret()
	if secret == nil {
		return errors.NewBadRequestError("No two-factor secret has been provisioned")
	}

	if !uc.totpProvider.Validate(cmd.Code, *secret) {
		return errors.NewInvalidTwoFactorError()
	}

	if err := acct.ConfirmTwoFactor(); err != nil {
		if stderrors.Is(err, account.ErrTwoFactorAlreadyEnabled) {
			return errors.NewConflictError("Two-factor authentication is already enabled")
		}
		return fmt.Errorf("failed to enable two-factor authentication: %w", err)
	}

	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	uc.logger.Infow("two-factor authentication enabled", "account_id", acct.ID())
	return nil
}
