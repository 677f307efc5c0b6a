package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID      uint   `json:"-"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      PasswordHasher
	logger      logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher PasswordHasher,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}
	if len(cmd.NewPassword) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "user_id", cmd.UserID, "error", err)
		return err
	}
	if u == nil {
		return errors.NewNotFoundError("user not found")
	}

	if u.HasPassword() {
		if err := uc.hasher.Verify(cmd.OldPassword, *u.PasswordHash()); err != nil {
			return errors.NewUnauthorizedError("current password is incorrect")
		}
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return err
	}
	if err := u.SetPasswordHash(hash); err != nil {
		return err
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "user_id", u.ID(), "error", err)
		return err
	}

	// Changing the password ends every other device's session.
	if err := uc.sessionRepo.DeleteByUserID(u.ID()); err != nil {
		uc.logger.Warnw("failed to clear sessions after password change", "user_id", u.ID(), "error", err)
	}

	uc.logger.Infow("password changed", "user_id", u.ID())
	return nil
}
