package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type InitiateTwoFactorCommand struct {
	AccountID uint
}

type InitiateTwoFactorResult struct {
	Secret     string
	OtpauthURL string
}

type InitiateTwoFactorUseCase struct {
	accountRepo  account.Repository
	totpProvider TOTPProvider
	logger       logger.Interface
}

func NewInitiateTwoFactorUseCase(
	accountRepo account.Repository,
	totpProvider TOTPProvider,
	logger logger.Interface,
) *InitiateTwoFactorUseCase {
	return &InitiateTwoFactorUseCase{
		accountRepo:  accountRepo,
		totpProvider: totpProvider,
		logger:       logger,
	}
}

// Execute provisions a second-factor secret. The secret carries no weight
// at login until a valid code confirms it; calling this again before
// confirmation replaces the pending secret.
func (uc *InitiateTwoFactorUseCase) Execute(ctx context.Context, cmd InitiateTwoFactorCommand) (*InitiateTwoFactorResult, error) {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return nil, errors.NewNotFoundError("Account not found")
	}

	secret, otpauthURL, err := uc.totpProvider.GenerateSecret(acct.Email().String())
	if err != nil {
		uc.logger.Errorw("failed to generate second-factor secret", "account_id", acct.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	if err := acct.ProvisionTwoFactorSecret(secret); err != nil {
		if stderrors.Is(err, account.ErrTwoFactorAlreadyEnabled) {
			return nil, errors.NewConflictError("Two-factor authentication is already enabled")
		}
		return nil, fmt.Errorf("failed to provision secret: %w", err)
	}

	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	uc.logger.Infow("two-factor secret provisioned", "account_id", acct.ID())

	return &InitiateTwoFactorResult{
		Secret:     secret,
		OtpauthURL: otpauthURL,
	}, nil
}
