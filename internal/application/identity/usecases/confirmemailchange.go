package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type ConfirmEmailChangeCommand struct {
	AccountID uint
	Code      string
}

type ConfirmEmailChangeUseCase struct {
	accountRepo  account.Repository
	sessionRepo  session.Repository
	registry     *verification.Registry
	emailService EmailService
	logger       logger.Interface
}

func NewConfirmEmailChangeUseCase(
	accountRepo account.Repository,
	sessionRepo session.Repository,
	registry *verification.Registry,
	emailService EmailService,
	logger logger.Interface,
) *ConfirmEmailChangeUseCase {
	return &ConfirmEmailChangeUseCase{
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		registry:     registry,
		emailService: emailService,
		logger:       logger,
	}
}

// Execute completes an email change. Consuming the code proves control of
// the new mailbox; the swap bumps the token epoch, signs the account out
// everywhere and notifies the old address.
func (uc *ConfirmEmailChangeUseCase) Execute(ctx context.Context, cmd ConfirmEmailChangeCommand) error {
	acct, err := uc.accountRepo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "account_id", cmd.AccountID, "error", err)
		return fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return errors.NewNotFoundError("Account not found")
	}

	metadata, err := uc.registry.Consume(ctx, acct.ID(), verification.KindEmailChange, cmd.Code)
	if err != nil {
		if stderrors.Is(err, verification.ErrCodeInvalid) {
			return errors.NewInvalidOrExpiredError("confirmation code")
		}
		uc.logger.Errorw("failed to consume email change code", "account_id", acct.ID(), "error", err)
		return fmt.Errorf("failed to consume email change code: %w", err)
	}

	pending := acct.PendingEmail()
	if pending == nil {
		return errors.NewInvalidOrExpiredError("confirmation code")
	}

	// The code was issued for the pending address; a mismatch means the
	// request was superseded after this code went out.
	if issuedFor, err := vo.NewEmail(metadata); err != nil || !pending.Equals(issuedFor) {
		return errors.NewInvalidOrExpiredError("confirmation code")
	}

	// The address may have been claimed since the request was made.
	taken, err := uc.accountRepo.ExistsByEmail(ctx, pending)
	if err != nil {
		uc.logger.Errorw("failed to check email availability", "error", err)
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	if taken {
		return errors.NewConflictError("An account with this email already exists")
	}

	oldEmail := acct.Email().String()

	if err := acct.ConfirmEmailChange(); err != nil {
		return fmt.Errorf("failed to confirm email change: %w", err)
	}

	// Persist the bumped token version before removing the session rows.
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	if err := uc.sessionRepo.DeleteByAccountID(ctx, acct.ID()); err != nil {
		uc.logger.Errorw("failed to delete account sessions", "account_id", acct.ID(), "error", err)
	}

	if err := uc.emailService.SendEmailChangedNotice(oldEmail, acct.Email().String()); err != nil {
		uc.logger.Errorw("failed to notify old address", "account_id", acct.ID(), "error", err)
	}

	uc.logger.Infow("email change confirmed", "account_id", acct.ID())
	return nil
}
