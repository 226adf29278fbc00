package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type VerifyEmailCommand struct {
	Email string
	Code  string
}

type VerifyEmailUseCase struct {
	accountRepo account.Repository
	registry    *verification.Registry
	logger      logger.Interface
}

func NewVerifyEmailUseCase(
	accountRepo account.Repository,
	registry *verification.Registry,
	logger logger.Interface,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		accountRepo: accountRepo,
		registry:    registry,
		logger:      logger,
	}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) error {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return errors.NewValidationError("Invalid email address", err.Error())
	}

	acct, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get account by email", "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}

	// An unknown address gets the same answer as a wrong code.
	if acct == nil {
		return errors.NewInvalidOrExpiredError("verification code")
	}

	// Re-verifying is a no-op. Burn any code still outstanding so it
	// cannot linger past the address being proven.
	if acct.IsEmailVerified() {
		if err := uc.registry.Revoke(ctx, acct.ID(), verification.KindEmailVerification); err != nil {
			uc.logger.Warnw("failed to revoke stale verification code", "account_id", acct.ID(), "error", err)
		}
		return nil
	}

	if _, err := uc.registry.Consume(ctx, acct.ID(), verification.KindEmailVerification, cmd.Code); err != nil {
		if stderrors.Is(err, verification.ErrCodeInvalid) {
			return errors.NewInvalidOrExpiredError("verification code")
		}
		uc.logger.Errorw("failed to consume verification code", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to consume verification code: %w", err)
	}

	acct.MarkEmailVerified()
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	uc.logger.Infow("email verified", "account_id", acct.ID())
	return nil
}
