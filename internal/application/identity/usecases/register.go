package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/shared/config"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/id"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Password string
}

type RegisterResult struct {
	Account *account.Account
}

type RegisterUseCase struct {
	accountRepo    account.Repository
	registry       *verification.Registry
	passwordHasher account.PasswordHasher
	emailService   EmailService
	features       config.FeatureConfig
	logger         logger.Interface
}

func NewRegisterUseCase(
	accountRepo account.Repository,
	registry *verification.Registry,
	hasher account.PasswordHasher,
	emailService EmailService,
	features config.FeatureConfig,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		accountRepo:    accountRepo,
		registry:       registry,
		passwordHasher: hasher,
		emailService:   emailService,
		features:       features,
		logger:         logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	if !uc.features.RegistrationEnabled {
		return nil, errors.NewForbiddenError("Registration is currently disabled")
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("Invalid email address", err.Error())
	}

	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError("Invalid password", err.Error())
	}

	exists, err := uc.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check email availability", "error", err)
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("An account with this email already exists")
	}

	newAccount, err := account.NewAccount(email, id.NewAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := newAccount.SetPassword(password, uc.passwordHasher); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	// New accounts start as guests; an admin promotes them once enrollment
	// is confirmed.
	if err := uc.accountRepo.Create(ctx, newAccount); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("An account with this email already exists")
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	code, err := uc.registry.Issue(ctx, newAccount.ID(), verification.KindEmailVerification, "")
	if err != nil {
		uc.logger.Errorw("failed to issue verification code", "account_id", newAccount.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue verification code: %w", err)
	}

	if err := uc.emailService.SendVerificationCode(email.String(), code.Value()); err != nil {
		// The account exists; the code can be resent later.
		uc.logger.Errorw("failed to send verification email", "account_id", newAccount.ID(), "error", err)
	}

	uc.logger.Infow("account registered", "account_id", newAccount.ID(), "sid", newAccount.SID())

	return &RegisterResult{Account: newAccount}, nil
}
