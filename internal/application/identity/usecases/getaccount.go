package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type GetAccountCommand struct {
	AccountID uint
}

type GetAccountResult struct {
	Account *account.Account
}

type GetAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewGetAccountUseCase(accountRepo account.Repository, logger logger.Interface) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, cmd GetAccountCommand) (*GetAccountResult, error) {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return nil, errors.NewNotFoundError("Account not found")
	}

	return &GetAccountResult{Account: acct}, nil
}
