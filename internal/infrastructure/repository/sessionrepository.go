package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/mappers"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// SessionRepository implements the session repository interface on GORM.
type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
	logger logger.Interface
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB, logger logger.Interface) session.Repository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
		logger: logger,
	}
}

// Create persists a new session
func (r *SessionRepository) Create(ctx context.Context, entity *session.Session) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create session", "account_id", model.AccountID, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its identifier
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*session.Session, error) {
	var model models.SessionModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get session by ID", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// GetByAccountID lists an account's sessions, most recently used first
func (r *SessionRepository) GetByAccountID(ctx context.Context, accountID uint) ([]*session.Session, error) {
	var sessionModels []*models.SessionModel

	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("last_used_at DESC").
		Find(&sessionModels).Error; err != nil {
		r.logger.Errorw("failed to list sessions", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return r.mapper.ToEntities(sessionModels), nil
}

// FindByFingerprint locates an account's session matching the given IP
// address and raw user agent string
func (r *SessionRepository) FindByFingerprint(ctx context.Context, accountID uint, ipAddress, userAgent string) (*session.Session, error) {
	var model models.SessionModel

	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND ip_address = ? AND user_agent = ?", accountID, ipAddress, userAgent).
		Order("last_used_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find session by fingerprint", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// Update persists changes to an existing session
func (r *SessionRepository) Update(ctx context.Context, entity *session.Session) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update session", "error", err)
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Delete removes a session, scoped to the owning account
func (r *SessionRepository) Delete(ctx context.Context, id string, accountID uint) error {
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(&models.SessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete session", "account_id", accountID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteByAccountID removes every session belonging to an account
func (r *SessionRepository) DeleteByAccountID(ctx context.Context, accountID uint) error {
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.SessionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete account sessions", "account_id", accountID, "error", err)
		return fmt.Errorf("failed to delete account sessions: %w", err)
	}

	return nil
}
