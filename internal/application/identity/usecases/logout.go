package usecases

import (
	"context"

	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type LogoutCommand struct {
	AccountID uint
	SessionID string
	IPAddress string
	UserAgent string
}

type LogoutUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo session.Repository, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute removes the calling device's session. Logout always succeeds:
// failing to find the session row leaves nothing to revoke, and the
// handler clears the cookies either way.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.SessionID != "" {
		if err := uc.sessionRepo.Delete(ctx, cmd.SessionID, cmd.AccountID); err != nil {
			uc.logger.Errorw("failed to delete session", "session_id", cmd.SessionID, "error", err)
		}
		return nil
	}

	// No session id in the token; fall back to the device fingerprint.
	sess, err := uc.sessionRepo.FindByFingerprint(ctx, cmd.AccountID, cmd.IPAddress, cmd.UserAgent)
	if err != nil {
		uc.logger.Errorw("failed to find session by fingerprint", "account_id", cmd.AccountID, "error", err)
		return nil
	}
	if sess == nil {
		return nil
	}

	if err := uc.sessionRepo.Delete(ctx, sess.ID(), cmd.AccountID); err != nil {
		uc.logger.Errorw("failed to delete session", "session_id", sess.ID(), "error", err)
	}

	return nil
}
