package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type LoginCommand struct {
	Email         string
	Password      string
	TwoFactorCode string
	IPAddress     string
	UserAgent     string
}

type LoginResult struct {
	Account *account.Account
	// TwoFactorRequired signals the password checked out but a TOTP code
	// must be submitted before any session or tokens exist.
	TwoFactorRequired bool
	SessionID         string
	AccessToken       string
	RefreshToken      string
	ExpiresIn         int64
}

type LoginUseCase struct {
	accountRepo    account.Repository
	sessionRepo    session.Repository
	passwordHasher account.PasswordHasher
	tokenService   TokenService
	totpProvider   TOTPProvider
	logger         logger.Interface
}

func NewLoginUseCase(
	accountRepo account.Repository,
	sessionRepo session.Repository,
	hasher account.PasswordHasher,
	tokenService TokenService,
	totpProvider TOTPProvider,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		accountRepo:    accountRepo,
		sessionRepo:    sessionRepo,
		passwordHasher: hasher,
		tokenService:   tokenService,
		totpProvider:   totpProvider,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		// Malformed addresses get the same answer as wrong credentials.
		return nil, errors.NewInvalidCredentialsError()
	}

	acct, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get account by email", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if acct == nil || !acct.VerifyPassword(cmd.Password, uc.passwordHasher) {
		return nil, errors.NewInvalidCredentialsError()
	}

	if !acct.IsEmailVerified() {
		return nil, errors.NewForbiddenError("Email address not verified", "Verify your email before logging in")
	}

	if acct.TwoFactorEnabled() {
		if cmd.TwoFactorCode == "" {
			return &LoginResult{Account: acct, TwoFactorRequired: true}, nil
		}

		secret := acct.TwoFactorSecret()
		if secret == nil || !uc.totpProvider.Validate(cmd.TwoFactorCode, *secret) {
			return nil, errors.NewInvalidTwoFactorError()
		}
	}

	sess, err := session.NewSession(acct.ID(), cmd.IPAddress, cmd.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := uc.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	tokens, err := uc.tokenService.Generate(acct.SID(), sess.ID(), acct.Role(), acct.TokenVersion())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "account_id", acct.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("account logged in", "account_id", acct.ID(), "session_id", sess.ID())

	return &LoginResult{
		Account:      acct,
		SessionID:    sess.ID(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
