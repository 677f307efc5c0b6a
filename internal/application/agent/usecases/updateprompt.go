package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdatePromptCommand struct {
	AgentID       uint   `json:"agent_id"`
	SystemPrompt  string `json:"system_prompt"`
	PromptVersion string `json:"prompt_version"`
	Role          string `json:"role"`
}

type UpdatePromptUseCase struct {
	agentRepo agent.Repository
	logger    logger.Interface
}

func NewUpdatePromptUseCase(agentRepo agent.Repository, logger logger.Interface) *UpdatePromptUseCase {
	return &UpdatePromptUseCase{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

func (uc *UpdatePromptUseCase) Execute(ctx context.Context, cmd UpdatePromptCommand) (*dto.AgentDTO, error) {
	if !authorization.ParseUserRole(cmd.Role).IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can manage agents")
	}
	if cmd.AgentID == 0 {
		return nil, errors.NewValidationError("agent ID is required")
	}

	ag, err := uc.agentRepo.GetByID(ctx, cmd.AgentID)
	if err != nil {
		uc.logger.Errorw("failed to get agent", "agent_id", cmd.AgentID, "error", err)
		return nil, err
	}
	if ag == nil {
		return nil, errors.NewNotFoundError("agent not found")
	}

	if err := ag.UpdatePrompt(cmd.SystemPrompt, cmd.PromptVersion); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.agentRepo.Update(ctx, ag); err != nil {
		uc.logger.Errorw("failed to update agent", "agent_id", cmd.AgentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("agent prompt updated",
		"agent_id", ag.ID(),
		"slug", ag.Slug(),
		"prompt_version", ag.PromptVersion())
	return dto.ToAgentDTO(ag), nil
}
