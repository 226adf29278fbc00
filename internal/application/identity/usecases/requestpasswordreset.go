package usecases

import (
	"context"
	"time"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type RequestPasswordResetCommand struct {
	Email string
}

type RequestPasswordResetUseCase struct {
	accountRepo  account.Repository
	emailService EmailService
	resetTTL     time.Duration
	logger       logger.Interface
}

func NewRequestPasswordResetUseCase(
	accountRepo account.Repository,
	emailService EmailService,
	resetTTL time.Duration,
	logger logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		accountRepo:  accountRepo,
		emailService: emailService,
		resetTTL:     resetTTL,
		logger:       logger,
	}
}

// Execute starts the password reset flow. The outcome is identical for
// every input: nil, regardless of whether the address is registered,
// malformed, or the mail fails to go out. Failures are only logged.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil
	}

	acct, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get account by email", "error", err)
		return nil
	}
	if acct == nil {
		return nil
	}

	token, err := acct.GeneratePasswordResetToken(uc.resetTTL)
	if err != nil {
		uc.logger.Errorw("failed to generate reset token", "account_id", acct.ID(), "error", err)
		return nil
	}

	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		uc.logger.Errorw("failed to store reset token", "account_id", acct.ID(), "error", err)
		return nil
	}

	if err := uc.emailService.SendPasswordResetEmail(email.String(), token.Value()); err != nil {
		uc.logger.Errorw("failed to send reset email", "account_id", acct.ID(), "error", err)
		return nil
	}

	uc.logger.Infow("password reset requested", "account_id", acct.ID())
	return nil
}
