package mappers

import (
	"fmt"

	"github.com/aula-lms/aula/internal/domain/account"
	vo "github.com/aula-lms/aula/internal/domain/account/valueobjects"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
	"github.com/aula-lms/aula/internal/shared/authorization"
)

// AccountMapper handles the conversion between domain entities and persistence models
type AccountMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.AccountModel) (*account.Account, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *account.Account) (*models.AccountModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.AccountModel) ([]*account.Account, error)
}

// AccountMapperImpl is the concrete implementation of AccountMapper
type AccountMapperImpl struct{}

// NewAccountMapper creates a new account mapper
func NewAccountMapper() AccountMapper {
	return &AccountMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *AccountMapperImpl) ToEntity(model *models.AccountModel) (*account.Account, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	var pendingEmail *vo.Email
	if model.PendingEmail != nil {
		pendingEmail, err = vo.NewEmail(*model.PendingEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to create pending email value object: %w", err)
		}
	}

	role := authorization.ParseRole(model.Role)

	authData := &account.AuthData{
		PasswordHash:           model.PasswordHash,
		EmailVerified:          model.EmailVerified,
		PendingEmail:           pendingEmail,
		TokenVersion:           model.TokenVersion,
		TwoFactorSecret:        model.TwoFactorSecret,
		TwoFactorEnabled:       model.TwoFactorEnabled,
		PasswordResetToken:     model.PasswordResetToken,
		PasswordResetExpiresAt: model.PasswordResetExpiresAt,
	}

	entity, err := account.ReconstructAccount(
		model.ID,
		model.SID,
		email,
		role,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
		authData,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct account entity: %w", err)
	}

	return entity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *AccountMapperImpl) ToModel(entity *account.Account) (*models.AccountModel, error) {
	if entity == nil {
		return nil, nil
	}

	authData := entity.GetAuthData()

	var pendingEmail *string
	if authData.PendingEmail != nil {
		value := authData.PendingEmail.String()
		pendingEmail = &value
	}

	model := &models.AccountModel{
		ID:                     entity.ID(),
		SID:                    entity.SID(),
		Email:                  entity.Email().String(),
		PendingEmail:           pendingEmail,
		Role:                   entity.Role().String(),
		Version:                entity.Version(),
		CreatedAt:              entity.CreatedAt(),
		UpdatedAt:              entity.UpdatedAt(),
		PasswordHash:           authData.PasswordHash,
		EmailVerified:          authData.EmailVerified,
		TokenVersion:           authData.TokenVersion,
		TwoFactorSecret:        authData.TwoFactorSecret,
		TwoFactorEnabled:       authData.TwoFactorEnabled,
		PasswordResetToken:     authData.PasswordResetToken,
		PasswordResetExpiresAt: authData.PasswordResetExpiresAt,
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *AccountMapperImpl) ToEntities(accountModels []*models.AccountModel) ([]*account.Account, error) {
	entities := make([]*account.Account, 0, len(accountModels))
	for _, model := range accountModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
