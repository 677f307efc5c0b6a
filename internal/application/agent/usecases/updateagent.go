package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateAgentCommand struct {
	AgentID      uint     `json:"agent_id"`
	DisplayName  *string  `json:"display_name"`
	ModelName    *string  `json:"model_name"`
	AllowedTools []string `json:"allowed_tools"`
	Role         string   `json:"role"`
}

type UpdateAgentUseCase struct {
	agentRepo  agent.Repository
	knownTools []string
	logger     logger.Interface
}

func NewUpdateAgentUseCase(agentRepo agent.Repository, knownTools []string, logger logger.Interface) *UpdateAgentUseCase {
	return &UpdateAgentUseCase{
		agentRepo:  agentRepo,
		knownTools: knownTools,
		logger:     logger,
	}
}

func (uc *UpdateAgentUseCase) Execute(ctx context.Context, cmd UpdateAgentCommand) (*dto.AgentDTO, error) {
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

	if cmd.DisplayName != nil {
		if err := ag.UpdateDisplayName(*cmd.DisplayName); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.ModelName != nil {
		if err := ag.UpdateModel(*cmd.ModelName); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.AllowedTools != nil {
		if err := validateToolNames(cmd.AllowedTools, uc.knownTools); err != nil {
			return nil, err
		}
		ag.SetAllowedTools(cmd.AllowedTools)
	}

	if err := uc.agentRepo.Update(ctx, ag); err != nil {
		uc.logger.Errorw("failed to update agent", "agent_id", cmd.AgentID, "error", err)
		return nil, err
	}

	uc.logger.Infow("agent updated", "agent_id", ag.ID(), "slug", ag.Slug())
	return dto.ToAgentDTO(ag), nil
}
