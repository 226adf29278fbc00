package mappers

import (
	"github.com/aula-lms/aula/internal/domain/session"
	"github.com/aula-lms/aula/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between domain entities and persistence models
type SessionMapper interface {
	ToEntity(model *models.SessionModel) *session.Session
	ToModel(entity *session.Session) *models.SessionModel
	ToEntities(models []*models.SessionModel) []*session.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper
type SessionMapperImpl struct{}

// NewSessionMapper creates a new session mapper
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToEntity(model *models.SessionModel) *session.Session {
	if model == nil {
		return nil
	}

	return session.Reconstruct(
		model.ID,
		model.AccountID,
		model.IPAddress,
		model.UserAgent,
		model.Browser,
		model.OS,
		model.Device,
		model.CreatedAt,
		model.LastUsedAt,
	)
}

func (m *SessionMapperImpl) ToModel(entity *session.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}

	return &models.SessionModel{
		ID:         entity.ID(),
		AccountID:  entity.AccountID(),
		IPAddress:  entity.IPAddress(),
		UserAgent:  entity.UserAgent(),
		Browser:    entity.Browser(),
		OS:         entity.OS(),
		Device:     entity.Device(),
		LastUsedAt: entity.LastUsedAt(),
		CreatedAt:  entity.CreatedAt(),
	}
}

func (m *SessionMapperImpl) ToEntities(sessionModels []*models.SessionModel) []*session.Session {
	entities := make([]*session.Session, 0, len(sessionModels))
	for _, model := range sessionModels {
		if entity := m.ToEntity(model); entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities
}
