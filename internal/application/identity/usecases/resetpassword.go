package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

type ResetPasswordUseCase struct {
	accountRepo    account.Repository
	sessionRepo    session.Repository
	passwordHasher account.PasswordHasher
	emailService   EmailService
	logger         logger.Interface
}

func NewResetPasswordUseCase(
	accountRepo account.Repository,
	sessionRepo session.Repository,
	hasher account.PasswordHasher,
	emailService EmailService,
	logger logger.Interface,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		accountRepo:    accountRepo,
		sessionRepo:    sessionRepo,
		passwordHasher: hasher,
		emailService:   emailService,
		logger:         logger,
	}
}

// Execute completes the password reset: the token is single use, and a
// successful reset signs the account out everywhere.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, cmd ResetPasswordCommand) error {
	presented, err := vo.NewTokenFromValue(cmd.Token)
	if err != nil {
		return errors.NewInvalidOrExpiredError("reset token")
	}

	newPassword, err := vo.NewPassword(cmd.NewPassword)
	if err != nil {
		return errors.NewValidationError("Invalid password", err.Error())
	}

	acct, err := uc.accountRepo.GetByPasswordResetToken(ctx, presented.Hash())
	if err != nil {
		uc.logger.Errorw("failed to look up reset token", "error", err)
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if acct == nil {
		return errors.NewInvalidOrExpiredError("reset token")
	}

	if err := acct.ResetPassword(cmd.Token, newPassword, uc.passwordHasher); err != nil {
		switch {
		case stderrors.Is(err, account.ErrNoResetToken),
			stderrors.Is(err, account.ErrResetTokenExpired),
			stderrors.Is(err, account.ErrResetTokenMismatch):
			return errors.NewInvalidOrExpiredError("reset token")
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	// ResetPassword bumped the token version; persist it before touching
	// the session rows so outstanding tokens are stale even if the
	// cleanup below fails.
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	if err := uc.sessionRepo.DeleteByAccountID(ctx, acct.ID()); err != nil {
		uc.logger.Errorw("failed to delete account sessions", "account_id", acct.ID(), "error", err)
	}

	if err := uc.emailService.SendPasswordChangedEmail(acct.Email().String()); err != nil {
		uc.logger.Errorw("failed to send password changed email", "account_id", acct.ID(), "error", err)
	}

	uc.logger.Infow("password reset completed", "account_id", acct.ID())
	return nil
}
