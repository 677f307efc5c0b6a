package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetAgentQuery struct {
	AgentID uint   `json:"agent_id"`
	Slug    string `json:"slug"`
}

type GetAgentUseCase struct {
	agentRepo agent.Repository
	logger    logger.Interface
}

func NewGetAgentUseCase(agentRepo agent.Repository, logger logger.Interface) *GetAgentUseCase {
	return &GetAgentUseCase{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

func (uc *GetAgentUseCase) Execute(ctx context.Context, query GetAgentQuery) (*dto.AgentDTO, error) {
	var (
		ag  *agent.Agent
		err error
	)

	switch {
	case query.AgentID != 0:
		ag, err = uc.agentRepo.GetByID(ctx, query.AgentID)
	case query.Slug != "":
		ag, err = uc.agentRepo.GetBySlug(ctx, query.Slug)
	default:
		return nil, errors.NewValidationError("agent ID or slug is required")
	}

	if err != nil {
		uc.logger.Errorw("failed to get agent", "agent_id", query.AgentID, "slug", query.Slug, "error", err)
		return nil, err
	}
	if ag == nil {
		return nil, errors.NewNotFoundError("agent not found")
	}

	return dto.ToAgentDTO(ag), nil
}
