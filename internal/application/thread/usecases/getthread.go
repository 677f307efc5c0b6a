package usecases

import (
	"context"

	"helpdesk/internal/application/thread/dto"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetThreadQuery struct {
	ThreadID uint   `json:"thread_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type GetThreadUseCase struct {
	threadRepo  thread.ThreadRepository
	messageRepo thread.MessageRepository
	logger      logger.Interface
}

func NewGetThreadUseCase(
	threadRepo thread.ThreadRepository,
	messageRepo thread.MessageRepository,
	logger logger.Interface,
) *GetThreadUseCase {
	return &GetThreadUseCase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *GetThreadUseCase) Execute(ctx context.Context, query GetThreadQuery) (*dto.ThreadDTO, error) {
	if query.ThreadID == 0 {
		return nil, errors.NewValidationError("thread ID is required")
	}

	t, err := uc.threadRepo.GetByID(ctx, query.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to get thread", "thread_id", query.ThreadID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("thread not found")
	}
	if !t.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewForbiddenError("you do not have access to this thread")
	}

	messages, err := uc.messageRepo.GetByThreadID(ctx, query.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to load thread messages", "thread_id", query.ThreadID, "error", err)
		return nil, err
	}
	t.AttachMessages(messages)

	return dto.ToThreadDTO(t), nil
}
