package usecases

import (
	"context"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ReopenThreadCommand struct {
	ThreadID uint   `json:"thread_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type ReopenThreadUseCase struct {
	threadRepo thread.ThreadRepository
	logger     logger.Interface
}

func NewReopenThreadUseCase(threadRepo thread.ThreadRepository, logger logger.Interface) *ReopenThreadUseCase {
	return &ReopenThreadUseCase{
		threadRepo: threadRepo,
		logger:     logger,
	}
}

func (uc *ReopenThreadUseCase) Execute(ctx context.Context, cmd ReopenThreadCommand) error {
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

	if err := t.Reopen(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.threadRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update thread", "thread_id", cmd.ThreadID, "error", err)
		return err
	}

	uc.logger.Infow("thread reopened", "thread_id", cmd.ThreadID, "reopened_by", cmd.UserID)
	return nil
}
