package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/config"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type RequestEmailChangeCommand struct {
	AccountID uint
	NewEmail  string
	Password  string
}

type RequestEmailChangeUseCase struct {
	accountRepo    account.Repository
	registry       *verification.Registry
	passwordHasher account.PasswordHasher
	emailService   EmailService
	features       config.FeatureConfig
	logger         logger.Interface
}

func NewRequestEmailChangeUseCase(
	accountRepo account.Repository,
	registry *verification.Registry,
	hasher account.PasswordHasher,
	emailService EmailService,
	features config.FeatureConfig,
	logger logger.Interface,
) *RequestEmailChangeUseCase {
	return &RequestEmailChangeUseCase{
		accountRepo:    accountRepo,
		registry:       registry,
		passwordHasher: hasher,
		emailService:   emailService,
		features:       features,
		logger:         logger,
	}
}

// Execute starts an email change: the password re-proves the caller, a
// confirmation code goes to the NEW address, and nothing about the account
// changes until that code is consumed.
func (uc *RequestEmailChangeUseCase) Execute(ctx context.Context, cmd RequestEmailChangeCommand) error {
	if !uc.features.EmailChangeEnabled {
		return errors.NewForbiddenError("Email change is currently disabled")
	}

	newEmail, err := vo.NewEmail(cmd.NewEmail)
	if err != nil {
		return errors.NewValidationError("Invalid email address", err.Error())
	}

	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return errors.NewNotFoundError("Account not found")
	}

	if !acct.VerifyPassword(cmd.Password, uc.passwordHasher) {
		return errors.NewInvalidCredentialsError()
	}

	if acct.Email().Equals(newEmail) {
		return errors.NewValidationError("New email is identical to the current address")
	}

	taken, err := uc.accountRepo.ExistsByEmail(ctx, newEmail)
	if err != nil {
		uc.logger.Errorw("failed to check email availability", "error", err)
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	if taken {
		return errors.NewConflictError("An account with this email already exists")
	}

	if err := acct.RequestEmailChange(newEmail); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	code, err := uc.registry.Issue(ctx, acct.ID(), verification.KindEmailChange, newEmail.String())
	if err != nil {
		if stderrors.Is(err, verification.ErrResendCooldown) {
			return errors.NewRateLimitedError("A confirmation code was sent recently", "Wait a few minutes before requesting another")
		}
		uc.logger.Errorw("failed to issue email change code", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to issue email change code: %w", err)
	}

	if err := uc.emailService.SendEmailChangeCode(newEmail.String(), code.Value()); err != nil {
		uc.logger.Errorw("failed to send email change code", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to send email change code: %w", err)
	}

	uc.logger.Infow("email change requested", "account_id", acct.ID())
	return nil
}
