package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/errors"
)

type SessionRepository struct {
	db     *gorm.DB
	mapper mappers.SessionMapper
}

func NewSessionRepository(db *gorm.DB) user.SessionRepository {
	return &SessionRepository{
		db:     db,
		mapper: mappers.NewSessionMapper(),
	}
}

func (r *SessionRepository) Create(session *user.Session) error {
	model := r.mapper.ToModel(session)
	if err := r.db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(sessionID string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.Where("id = ?", sessionID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) GetByUserID(userID uint) ([]*user.Session, error) {
	var sessionModels []models.SessionModel
	err := r.db.Where("user_id = ? AND expires_at > ?", userID, time.Now().UTC()).
		Order("last_activity_at DESC").
		Find(&sessionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions by user ID: %w", err)
	}

	sessions := make([]*user.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = r.mapper.ToDomain(&sessionModels[i])
	}
	return sessions, nil
}

func (r *SessionRepository) GetByRefreshTokenHash(refreshTokenHash string) (*user.Session, error) {
	var model models.SessionModel
	err := r.db.Where("refresh_token_hash = ? AND expires_at > ?", refreshTokenHash, time.Now().UTC()).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to get session by refresh token hash: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SessionRepository) Update(session *user.Session) error {
	model := r.mapper.ToModel(session)
	result := r.db.Model(&models.SessionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"token_hash":         model.TokenHash,
			"refresh_token_hash": model.RefreshTokenHash,
			"expires_at":         model.ExpiresAt,
			"last_activity_at":   model.LastActivityAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("session not found")
	}
	return nil
}

func (r *SessionRepository) Delete(sessionID string) error {
	result := r.db.Delete(&models.SessionModel{}, "id = ?", sessionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

func (r *SessionRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Delete(&models.SessionModel{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete sessions by user ID: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired() error {
	if err := r.db.Delete(&models.SessionModel{}, "expires_at <= ?", time.Now().UTC()).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
