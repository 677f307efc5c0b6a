package repository

import (
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/errors"
)

type OAuthAccountRepository struct {
	db     *gorm.DB
	mapper mappers.OAuthAccountMapper
}

func NewOAuthAccountRepository(db *gorm.DB) user.OAuthAccountRepository {
	return &OAuthAccountRepository{
		db:     db,
		mapper: mappers.NewOAuthAccountMapper(),
	}
}

func (r *OAuthAccountRepository) Create(account *user.OAuthAccount) error {
	model := r.mapper.ToModel(account)
	if err := r.db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create oauth account: %w", err)
	}
	account.ID = model.ID
	return nil
}

func (r *OAuthAccountRepository) GetByProviderAndUserID(provider, providerUserID string) (*user.OAuthAccount, error) {
	var model models.OAuthAccountModel
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("oauth account not found")
		}
		return nil, fmt.Errorf("failed to get oauth account: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *OAuthAccountRepository) GetByUserID(userID uint) ([]*user.OAuthAccount, error) {
	var accountModels []models.OAuthAccountModel
	if err := r.db.Where("user_id = ?", userID).Find(&accountModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get oauth accounts by user ID: %w", err)
	}

	accounts := make([]*user.OAuthAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = r.mapper.ToDomain(&accountModels[i])
	}
	return accounts, nil
}

func (r *OAuthAccountRepository) Update(account *user.OAuthAccount) error {
	model := r.mapper.ToModel(account)
	result := r.db.Model(&models.OAuthAccountModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"provider_email":      model.ProviderEmail,
			"provider_avatar_url": model.ProviderAvatarURL,
			"last_login_at":       model.LastLoginAt,
			"login_count":         model.LoginCount,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}

func (r *OAuthAccountRepository) Delete(id uint) error {
	result := r.db.Delete(&models.OAuthAccountModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete oauth account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("oauth account not found")
	}
	return nil
}
