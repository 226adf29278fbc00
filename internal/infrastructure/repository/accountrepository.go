package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/mappers"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// AccountRepository implements the account repository interface on GORM.
type AccountRepository struct {
	db     *gorm.DB
	mapper mappers.AccountMapper
	logger logger.Interface
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB, logger logger.Interface) account.Repository {
	return &AccountRepository{
		db:     db,
		mapper: mappers.NewAccountMapper(),
		logger: logger,
	}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, entity *account.Account) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map account entity to model", "error", err)
		return fmt.Errorf("failed to map account entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create account in database", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set account ID", "error", err)
		return fmt.Errorf("failed to set account ID: %w", err)
	}

	r.logger.Infow("account created", "id", model.ID, "sid", model.SID)
	return nil
}

// GetByID retrieves an account by internal ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	var model models.AccountModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get account by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return r.toEntity(&model)
}

// GetBySID retrieves an account by external identifier
func (r *AccountRepository) GetBySID(ctx context.Context, sid string) (*account.Account, error) {
	var model models.AccountModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get account by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return r.toEntity(&model)
}

// GetByEmail retrieves an account by email address
func (r *AccountRepository) GetByEmail(ctx context.Context, email *vo.Email) (*account.Account, error) {
	var model models.AccountModel

	if err := r.db.WithContext(ctx).Where("email = ?", email.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get account by email", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return r.toEntity(&model)
}

// GetByPasswordResetToken retrieves an account by the hash of an
// outstanding password reset token
func (r *AccountRepository) GetByPasswordResetToken(ctx context.Context, tokenHash string) (*account.Account, error) {
	var model models.AccountModel

	if err := r.db.WithContext(ctx).Where("password_reset_token = ?", tokenHash).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get account by reset token", "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return r.toEntity(&model)
}

// ExistsByEmail checks whether an account exists with the given email
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email *vo.Email) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("email = ?", email.String()).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check account existence", "error", err)
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return count > 0, nil
}

// Update persists changes to an existing account
func (r *AccountRepository) Update(ctx context.Context, entity *account.Account) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map account entity to model", "error", err)
		return fmt.Errorf("failed to map account entity: %w", err)
	}

	// Save writes every column, including NULLed pointers like a cleared
	// reset token or a discarded second-factor secret.
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update account", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

func (r *AccountRepository) toEntity(model *models.AccountModel) (*account.Account, error) {
	entity, err := r.mapper.ToEntity(model)
	if err != nil {
		r.logger.Errorw("failed to map account model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map account: %w", err)
	}
	return entity, nil
}
