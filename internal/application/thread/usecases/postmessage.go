package usecases

import (
	"context"

	"helpdesk/internal/application/thread/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type PostMessageCommand struct {
	ThreadID uint   `json:"thread_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
}

type PostMessageResult struct {
	UserMessage dto.MessageDTO  `json:"user_message"`
	AgentReply  *dto.MessageDTO `json:"agent_reply"`
}

type PostMessageUseCase struct {
	threadRepo  thread.ThreadRepository
	messageRepo thread.MessageRepository
	agentRepo   agent.Repository
	runner      AgentRunner
	logger      logger.Interface
}

func NewPostMessageUseCase(
	threadRepo thread.ThreadRepository,
	messageRepo thread.MessageRepository,
	agentRepo agent.Repository,
	runner AgentRunner,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		agentRepo:   agentRepo,
		runner:      runner,
		logger:      logger,
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*PostMessageResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	t, err := uc.threadRepo.GetByID(ctx, cmd.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to get thread", "thread_id", cmd.ThreadID, "error", err)
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("thread not found")
	}
	if !t.CanBeViewedBy(cmd.UserID, cmd.Role) {
		return nil, errors.NewForbiddenError("you do not have access to this thread")
	}
	if !t.IsOpen() {
		return nil, errors.NewValidationError("cannot post to a closed thread")
	}

	history, err := uc.messageRepo.GetByThreadID(ctx, cmd.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to load thread messages", "thread_id", cmd.ThreadID, "error", err)
		return nil, err
	}

	userMsg, err := thread.NewUserMessage(cmd.ThreadID, cmd.UserID, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.messageRepo.Save(ctx, userMsg); err != nil {
		uc.logger.Errorw("failed to save message", "thread_id", cmd.ThreadID, "error", err)
		return nil, err
	}

	result := &PostMessageResult{UserMessage: dto.ToMessageDTO(userMsg)}

	// The user message is persisted before the model runs, so a provider
	// outage never loses user input.
	reply, err := uc.runAgent(ctx, t, history, userMsg)
	if err != nil {
		uc.logger.Warnw("agent reply failed", "thread_id", cmd.ThreadID, "error", err)
	} else if reply != nil {
		replyDTO := dto.ToMessageDTO(reply)
		result.AgentReply = &replyDTO
	}

	if err := uc.threadRepo.Update(ctx, t); err != nil {
		uc.logger.Warnw("failed to touch thread", "thread_id", cmd.ThreadID, "error", err)
	}

	return result, nil
}

func (uc *PostMessageUseCase) runAgent(ctx context.Context, t *thread.Thread, history []*thread.Message, userMsg *thread.Message) (*thread.Message, error) {
	ag, err := uc.agentRepo.GetByID(ctx, t.AgentID())
	if err != nil {
		return nil, err
	}
	if ag == nil || !ag.Enabled() {
		return nil, errors.NewValidationError("agent is unavailable")
	}

	content, tokensUsed, err := uc.runner.Reply(ctx, ag, history, userMsg)
	if err != nil {
		return nil, err
	}

	reply, err := thread.NewAgentMessage(t.ID(), content, tokensUsed)
	if err != nil {
		return nil, err
	}
	if err := uc.messageRepo.Save(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (uc *PostMessageUseCase) validateCommand(cmd PostMessageCommand) error {
	if cmd.ThreadID == 0 {
		return errors.NewValidationError("thread ID is required")
	}
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}
	if cmd.Content == "" {
		return errors.NewValidationError("content is required")
	}
	if len(cmd.Content) > 20000 {
		return errors.NewValidationError("content exceeds maximum length of 20000 characters")
	}
	return nil
}
