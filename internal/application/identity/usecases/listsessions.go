package usecases

import (
	"context"
	"fmt"

	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/shared/logger"
)

type ListSessionsCommand struct {
	AccountID uint
}

type ListSessionsResult struct {
	Sessions []*session.Session
}

type ListSessionsUseCase struct {
	sessionRepo session.Repository
	logger      logger.Interface
}

func NewListSessionsUseCase(sessionRepo session.Repository, logger logger.Interface) *ListSessionsUseCase {
	return &ListSessionsUseCase{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, cmd ListSessionsCommand) (*ListSessionsResult, error) {
	sessions, err := uc.sessionRepo.GetByAccountID(ctx, cmd.AccountID)
	if err != nil {
		uc.logger.Errorw("failed to list sessions", "account_id", cmd.AccountID, "error", err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsResult{Sessions: sessions}, nil
}
