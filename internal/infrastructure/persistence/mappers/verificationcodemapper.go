package mappers

import (
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
)

// VerificationCodeMapper handles the conversion between domain entities and persistence models
type VerificationCodeMapper interface {
	ToEntity(model *models.VerificationCodeModel) *verification.Code
	ToModel(entity *verification.Code) *models.VerificationCodeModel
}

// VerificationCodeMapperImpl is the concrete implementation of VerificationCodeMapper
type VerificationCodeMapperImpl struct{}

// NewVerificationCodeMapper creates a new verification code mapper
func NewVerificationCodeMapper() VerificationCodeMapper {
	return &VerificationCodeMapperImpl{}
}

func (m *VerificationCodeMapperImpl) ToEntity(model *models.VerificationCodeModel) *verification.Code {
	if model == nil {
		return nil
	}

	return verification.ReconstructCode(
		model.ID,
		model.AccountID,
		verification.Kind(model.Kind),
		model.Code,
		model.Metadata,
		model.ExpiresAt,
		model.LastSentAt,
		model.CreatedAt,
	)
}

func (m *VerificationCodeMapperImpl) ToModel(entity *verification.Code) *models.VerificationCodeModel {
	if entity == nil {
		return nil
	}

	return &models.VerificationCodeModel{
		ID:         entity.ID(),
		AccountID:  entity.AccountID(),
		Kind:       string(entity.Kind()),
		Code:       entity.Value(),
		Metadata:   entity.Metadata(),
		ExpiresAt:  entity.ExpiresAt(),
		LastSentAt: entity.LastSentAt(),
		CreatedAt:  entity.CreatedAt(),
	}
}
