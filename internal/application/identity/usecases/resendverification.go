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

type ResendVerificationCommand struct {
	Email string
}

type ResendVerificationUseCase struct {
	accountRepo  account.Repository
	registry     *verification.Registry
	emailService EmailService
	logger       logger.Interface
}

func NewResendVerificationUseCase(
	accountRepo account.Repository,
	registry *verification.Registry,
	emailService EmailService,
	logger logger.Interface,
) *ResendVerificationUseCase {
	return &ResendVerificationUseCase{
		accountRepo:  accountRepo,
		registry:     registry,
		emailService: emailService,
		logger:       logger,
	}
}

// Execute reissues the email verification code. Unknown addresses and
// already verified accounts succeed silently so the endpoint never
// confirms whether an email is registered.
func (uc *ResendVerificationUseCase) Execute(ctx context.Context, cmd ResendVerificationCommand) error {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return errors.NewValidationError("Invalid email address", err.Error())
	}

	acct, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get account by email", "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}

	if acct == nil || acct.IsEmailVerified() {
		return nil
	}

	code, err := uc.registry.Issue(ctx, acct.ID(), verification.KindEmailVerification, "")
	if err != nil {
		if stderrors.Is(err, verification.ErrResendCooldown) {
			return errors.NewRateLimitedError("A verification code was sent recently", "Wait a few minutes before requesting another")
		}
		uc.logger.Errorw("failed to issue verification code", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to issue verification code: %w", err)
	}

	if err := uc.emailService.SendVerificationCode(email.String(), code.Value()); err != nil {
		uc.logger.Errorw("failed to send verification email", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	uc.logger.Infow("verification code resent", "account_id", acct.ID())
	return nil
}
