package usecases

import (
	"context"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CloseThreadCommand struct {
	ThreadID uint   `json:"thread_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type CloseThreadUseCase struct {
	threadRepo thread.ThreadRepository
	logger     logger.Interface
}

func NewCloseThreadUseCase(threadRepo thread.ThreadRepository, logger logger.Interface) *CloseThreadUseCase {
	return &CloseThreadUseCase{
		threadRepo: threadRepo,
		logger:     logger,
	}
}

func (uc *CloseThreadUseCase) Execute(ctx context.Context, cmd CloseThreadCommand) error {
	if cmd.ThreadID == 0 {
		return errors.NewValidationError("thread ID is required")
	}

	t, err := uc.threadRepo.GetByID(ctx, cmd.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to get thread", "thread_id", cmd.ThreadID, "error", err)
		return err
	}
	if t == nil {
		return errors.NewNotFoundError("thread not found")
	}
	if !t.CanBeViewedBy(cmd.UserID, cmd.Role) {
		return errors.NewForbiddenError("you do not have access to this thread")
	}

	if err := t.Close(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.threadRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update thread", "thread_id", cmd.ThreadID, "error", err)
		return err
	}

	uc.logger.Infow("thread closed", "thread_id", cmd.ThreadID, "closed_by", cmd.UserID)
	return nil
}
