package dto

import (
	"time"

	"helpdesk/internal/domain/user"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID(),
		UUID:      u.UUID(),
		Email:     u.Email().String(),
		Name:      u.Name().String(),
		Role:      u.Role().String(),
		Status:    u.Status().String(),
		CreatedAt: u.CreatedAt(),
	}
}
