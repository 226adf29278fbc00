package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/errors"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type RevokeSessionCommand struct {
	AccountID uint
	SessionID string
}

type RevokeSessionUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewRevokeSessionUseCase(sessionRepo session.Repository, logger logger.Interface) *RevokeSessionUseCase {
	return &RevokeSessionUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Execute revokes one of the caller's sessions by id. A session that does
// not exist or belongs to another account reads as not found.
func (uc *RevokeSessionUseCase) Execute(ctx context.Context, cmd RevokeSessionCommand) error {
	sess, err := uc.sessionRepo.GetByID(ctx, cmd.SessionID)
	if err != nil {
		uc.logger.Errorw("failed to get session", "session_id", cmd.SessionID, "error", err)
		return fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil || sess.AccountID() != cmd.AccountID {
		return errors.NewNotFoundError("Session not found")
	}

	if err := uc.sessionRepo.Delete(ctx, cmd.SessionID, cmd.AccountID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	uc.logger.Infow("session revoked", "account_id", cmd.AccountID, "session_id", cmd.SessionID)
	return nil
}
