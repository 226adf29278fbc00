package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	Account      *account.Account
	SessionID    string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type RefreshTokenUseCase struct {
	accountRepo  account.Repository
	sessionRepo  session.Repository
	tokenService TokenService
	logger       logger.Interface
}

func NewRefreshTokenUseCase(
	accountRepo account.Repository,
	sessionRepo session.Repository,
	tokenService TokenService,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		accountRepo:  accountRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Execute rotates the token pair. The account's current token version is
// re-read on every refresh: a pair minted before a logout-all, password
// reset or email change carries an older version and is refused as stale
// no matter what the session table says.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	claims, err := uc.tokenService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	acct, err := uc.accountRepo.GetBySID(ctx, claims.AccountSID)
	if err != nil {
		uc.logger.Errorw("failed to get account by SID", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if acct == nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	if claims.TokenVersion != acct.TokenVersion() {
		return nil, errors.NewStaleTokenError()
	}

	sess, err := uc.sessionRepo.GetByID(ctx, claims.SessionID)
	if err != nil {
		uc.logger.Errorw("failed to get session", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil || sess.AccountID() != acct.ID() {
		// The device's session was revoked individually.
		return nil, errors.NewSessionExpiredError()
	}

	sess.Touch()
	if err := uc.sessionRepo.Update(ctx, sess); err != nil {
		uc.logger.Errorw("failed to touch session", "session_id", sess.ID(), "error", err)
	}

	tokens, err := uc.tokenService.Generate(acct.SID(), sess.ID(), acct.Role(), acct.TokenVersion())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "account_id", acct.ID(), "error", err)
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RefreshTokenResult{
		Account:      acct,
		SessionID:    sess.ID(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}
