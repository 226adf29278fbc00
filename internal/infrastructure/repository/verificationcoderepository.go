package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/mappers"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// VerificationCodeRepository implements the verification code repository on GORM.
type VerificationCodeRepository struct {
	db     *gorm.DB
	mapper mappers.VerificationCodeMapper
	logger logger.Interface
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB, logger logger.Interface) verification.Repository {
	return &VerificationCodeRepository{
		db:     db,
		mapper: mappers.NewVerificationCodeMapper(),
		logger: logger,
	}
}

// Create persists a new code
func (r *VerificationCodeRepository) Create(ctx context.Context, entity *verification.Code) error {
	model := r.mapper.ToModel(entity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create verification code", "account_id", model.AccountID, "kind", model.Kind, "error", err)
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	entity.SetID(model.ID)
	return nil
}

// GetByAccountAndKind retrieves the live code for an account and kind
func (r *VerificationCodeRepository) GetByAccountAndKind(ctx context.Context, accountID uint, kind verification.Kind) (*verification.Code, error) {
	var model models.VerificationCodeModel

	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND kind = ?", accountID, string(kind)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get verification code", "account_id", accountID, "kind", kind, "error", err)
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

// DeleteByAccountAndKind removes any code for an account and kind
func (r *VerificationCodeRepository) DeleteByAccountAndKind(ctx context.Context, accountID uint, kind verification.Kind) error {
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND kind = ?", accountID, string(kind)).
		Delete(&models.VerificationCodeModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete verification code", "account_id", accountID, "kind", kind, "error", err)
		return fmt.Errorf("failed to delete verification code: %w", err)
	}

	return nil
}

// DeleteByAccountID removes every code belonging to an account
func (r *VerificationCodeRepository) DeleteByAccountID(ctx context.Context, accountID uint) error {
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&models.VerificationCodeModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete verification codes", "account_id", accountID, "error", err)
		return fmt.Errorf("failed to delete verification codes: %w", err)
	}

	return nil
}
