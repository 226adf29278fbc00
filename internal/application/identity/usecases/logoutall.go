package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type LogoutAllCommand struct {
	AccountID uint
}

type LogoutAllUseCase struct {
	accountRepo account.Repository
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewLogoutAllUseCase(
	accountRepo account.Repository,
	sessionRepo session.Repository,
	logger logger.Interface,
) *LogoutAllUseCase {
	return &LogoutAllUseCase{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute signs the account out everywhere. The token version is bumped
// and persisted before the session rows go away, so every outstanding
// token pair is already stale even if the session cleanup fails midway.
func (uc *LogoutAllUseCase) Execute(ctx context.Context, cmd LogoutAllCommand) error {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return errors.NewNotFoundError("Account not found")
	}

	acct.BumpTokenVersion()
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	if err := uc.sessionRepo.DeleteByAccountID(ctx, acct.ID()); err != nil {
		uc.logger.Errorw("failed to delete account sessions", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	uc.logger.Infow("account logged out everywhere", "account_id", acct.ID())
	return nil
}
