package usecases

import (
	"context"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type SetAgentEnabledCommand struct {
	AgentID uint   `json:"agent_id"`
	Enabled bool   `json:"enabled"`
	Role    string `json:"role"`
}

type SetAgentEnabledUseCase struct {
	agentRepo agent.Repository
	logger    logger.Interface
}

func NewSetAgentEnabledUseCase(agentRepo agent.Repository, logger logger.Interface) *SetAgentEnabledUseCase {
	return &SetAgentEnabledUseCase{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

func (uc *SetAgentEnabledUseCase) Execute(ctx context.Context, cmd SetAgentEnabledCommand) error {
	if !authorization.ParseUserRole(cmd.Role).IsAdmin() {
		return errors.NewForbiddenError("only administrators can manage agents")
	}
	if cmd.AgentID == 0 {
		return errors.NewValidationError("agent ID is required")
	}

	ag, err := uc.agentRepo.GetByID(ctx, cmd.AgentID)
	if err != nil {
		uc.logger.Errorw("failed to get agent", "agent_id", cmd.AgentID, "error", err)
		return err
	}
	if ag == nil {
		return errors.NewNotFoundError("agent not found")
	}

	if cmd.Enabled {
		ag.Enable()
	} else {
		ag.Disable()
	}

	if err := uc.agentRepo.Update(ctx, ag); err != nil {
		uc.logger.Errorw("failed to update agent", "agent_id", cmd.AgentID, "error", err)
		return err
	}

	uc.logger.Infow("agent availability changed", "agent_id", ag.ID(), "slug", ag.Slug(), "enabled", cmd.Enabled)
	return nil
}
