package usecases

import (
	"context"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteAgentCommand struct {
	AgentID uint   `json:"agent_id"`
	Role    string `json:"role"`
}

type DeleteAgentUseCase struct {
	agentRepo agent.Repository
	logger    logger.Interface
}

func NewDeleteAgentUseCase(agentRepo agent.Repository, logger logger.Interface) *DeleteAgentUseCase {
	return &DeleteAgentUseCase{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

func (uc *DeleteAgentUseCase) Execute(ctx context.Context, cmd DeleteAgentCommand) error {
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

	if err := uc.agentRepo.Delete(ctx, cmd.AgentID); err != nil {
		uc.logger.Errorw("failed to delete agent", "agent_id", cmd.AgentID, "error", err)
		return err
	}

	uc.logger.Infow("agent deleted", "agent_id", cmd.AgentID, "slug", ag.Slug())
	return nil
}
