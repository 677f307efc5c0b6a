package mappers

import (
	"fmt"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/authorization"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		UUID:         u.UUID(),
		Email:        u.Email().String(),
		Name:         u.Name().String(),
		Role:         u.Role().String(),
		Status:       u.Status().String(),
		PasswordHash: u.PasswordHash(),
		Version:      u.Version(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email in user record (id=%d): %w", model.ID, err)
	}

	name, err := vo.NewName(model.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid name in user record (id=%d): %w", model.ID, err)
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in user record (id=%d): %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		model.UUID,
		email,
		name,
		authorization.ParseUserRole(model.Role),
		*status,
		model.PasswordHash,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
	)
}
