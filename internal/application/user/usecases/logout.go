package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LogoutCommand struct {
	SessionID string `json:"-"`
	UserID    uint   `json:"-"`
}

type LogoutUseCase struct {
	sessionRepo user.SessionRepository
	invalidator TokenInvalidator
	logger      logger.Interface
}

func NewLogoutUseCase(sessionRepo user.SessionRepository, invalidator TokenInvalidator, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		sessionRepo: sessionRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if cmd.SessionID == "" {
		return errors.NewValidationError("session ID is required")
	}

	session, err := uc.sessionRepo.GetByID(cmd.SessionID)
	if err != nil {
		uc.logger.Errorw("failed to look up session", "session_id", cmd.SessionID, "error", err)
		return err
	}
	if session == nil {
		return errors.NewNotFoundError("session not found")
	}
	if cmd.UserID != 0 && session.UserID != cmd.UserID {
		return errors.NewForbiddenError("session belongs to another user")
	}

	if err := uc.sessionRepo.Delete(session.ID); err != nil {
		uc.logger.Errorw("failed to delete session", "session_id", session.ID, "error", err)
		return err
	}
	uc.invalidator.Invalidate(session.ID)

	uc.logger.Infow("user logged out", "user_id", session.UserID, "session_id", session.ID)
	return nil
}
