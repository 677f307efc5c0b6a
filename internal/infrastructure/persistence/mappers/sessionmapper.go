package mappers

import (
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	ToModel(s *user.Session) *models.SessionModel
	ToDomain(model *models.SessionModel) *user.Session
}

type SessionMapperImpl struct{}

func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

func (m *SessionMapperImpl) ToModel(s *user.Session) *models.SessionModel {
	return &models.SessionModel{
		ID:               s.ID,
		UserID:           s.UserID,
		DeviceName:       s.DeviceName,
		IPAddress:        s.IPAddress,
		UserAgent:        s.UserAgent,
		TokenHash:        s.TokenHash,
		RefreshTokenHash: s.RefreshTokenHash,
		ExpiresAt:        s.ExpiresAt,
		LastActivityAt:   s.LastActivityAt,
		CreatedAt:        s.CreatedAt,
	}
}

func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	return &user.Session{
		ID:               model.ID,
		UserID:           model.UserID,
		DeviceName:       model.DeviceName,
		IPAddress:        model.IPAddress,
		UserAgent:        model.UserAgent,
		TokenHash:        model.TokenHash,
		RefreshTokenHash: model.RefreshTokenHash,
		ExpiresAt:        model.ExpiresAt,
		LastActivityAt:   model.LastActivityAt,
		CreatedAt:        model.CreatedAt,
	}
}
