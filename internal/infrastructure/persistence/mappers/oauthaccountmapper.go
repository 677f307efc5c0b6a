package mappers

import (
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/persistence/models"
)

// OAuthAccountMapper handles the conversion between OAuthAccount domain entities and persistence models.
type OAuthAccountMapper interface {
	ToModel(a *user.OAuthAccount) *models.OAuthAccountModel
	ToDomain(model *models.OAuthAccountModel) *user.OAuthAccount
}

type OAuthAccountMapperImpl struct{}

func NewOAuthAccountMapper() OAuthAccountMapper {
	return &OAuthAccountMapperImpl{}
}

func (m *OAuthAccountMapperImpl) ToModel(a *user.OAuthAccount) *models.OAuthAccountModel {
	return &models.OAuthAccountModel{
		ID:                a.ID,
		UserID:            a.UserID,
		Provider:          a.Provider,
		ProviderUserID:    a.ProviderUserID,
		ProviderEmail:     a.ProviderEmail,
		ProviderAvatarURL: a.ProviderAvatarURL,
		LastLoginAt:       a.LastLoginAt,
		LoginCount:        a.LoginCount,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (m *OAuthAccountMapperImpl) ToDomain(model *models.OAuthAccountModel) *user.OAuthAccount {
	return &user.OAuthAccount{
		ID:                model.ID,
		UserID:            model.UserID,
		Provider:          model.Provider,
		ProviderUserID:    model.ProviderUserID,
		ProviderEmail:     model.ProviderEmail,
		ProviderAvatarURL: model.ProviderAvatarURL,
		LastLoginAt:       model.LastLoginAt,
		LoginCount:        model.LoginCount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
