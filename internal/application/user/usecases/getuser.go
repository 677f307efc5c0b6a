package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetUserQuery struct {
	UserID uint   `json:"user_id"`
	UUID   string `json:"uuid"`
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error) {
	var (
		u   *user.User
		err error
	)
	switch {
	case query.UUID != "":
		u, err = uc.userRepo.GetByUUID(ctx, query.UUID)
	case query.UserID != 0:
		u, err = uc.userRepo.GetByID(ctx, query.UserID)
	default:
		return nil, errors.NewValidationError("user ID or UUID is required")
	}
	if err != nil {
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, err
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	return dto.ToUserDTO(u), nil
}
