package usecases

import (
	"context"

	"helpdesk/internal/application/thread/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateThreadCommand struct {
	Subject   string `json:"subject"`
	AgentSlug string `json:"agent_slug"`
	CreatorID uint   `json:"creator_id"`
}

type CreateThreadUseCase struct {
	threadRepo thread.ThreadRepository
	agentRepo  agent.Repository
	logger     logger.Interface
}

func NewCreateThreadUseCase(
	threadRepo thread.ThreadRepository,
	agentRepo agent.Repository,
	logger logger.Interface,
) *CreateThreadUseCase {
	return &CreateThreadUseCase{
		threadRepo: threadRepo,
		agentRepo:  agentRepo,
		logger:     logger,
	}
}

func (uc *CreateThreadUseCase) Execute(ctx context.Context, cmd CreateThreadCommand) (*dto.ThreadDTO, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	ag, err := uc.agentRepo.GetBySlug(ctx, cmd.AgentSlug)
	if err != nil {
		uc.logger.Errorw("failed to load agent", "slug", cmd.AgentSlug, "error", err)
		return nil, err
	}
	if ag == nil {
		return nil, errors.NewNotFoundError("agent not found")
	}
	if !ag.Enabled() {
		return nil, errors.NewValidationError("agent is disabled")
	}

	t, err := thread.NewThread(cmd.Subject, cmd.CreatorID, ag.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.threadRepo.Save(ctx, t); err != nil {
		uc.logger.Errorw("failed to save thread", "creator_id", cmd.CreatorID, "error", err)
		return nil, err
	}

	uc.logger.Infow("thread created",
		"thread_id", t.ID(),
		"creator_id", cmd.CreatorID,
		"agent_slug", cmd.AgentSlug)

	return dto.ToThreadDTO(t), nil
}

func (uc *CreateThreadUseCase) validateCommand(cmd CreateThreadCommand) error {
	if cmd.Subject == "" {
		return errors.NewValidationError("subject is required")
	}
	if len(cmd.Subject) > 200 {
		return errors.NewValidationError("subject exceeds maximum length of 200 characters")
	}
	if cmd.AgentSlug == "" {
		return errors.NewValidationError("agent slug is required")
	}
	if cmd.CreatorID == 0 {
		return errors.NewValidationError("creator ID is required")
	}
	return nil
}
